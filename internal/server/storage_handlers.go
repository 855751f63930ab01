package server

import (
	"fmt"

	"photogram/internal/models"
	"photogram/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetCollections lists the persisted collections and their keys.
func (s *Server) GetCollections(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"backend":     s.store.Backend().Name(),
		"collections": s.store.Collections(),
	})
}

// InitializeStorage seeds every collection that is not yet stored.
func (s *Server) InitializeStorage(c *fiber.Ctx) error {
	if err := s.store.Initialize(c.UserContext()); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"initialized": true,
		"collections": s.store.Collections(),
	})
}

// ReplaceCollection replaces one collection wholesale with the JSON array body.
func (s *Server) ReplaceCollection(c *fiber.Ctx) error {
	name := c.Params("name")
	coll, ok := repository.ParseCollection(name)
	if !ok {
		return respondError(c, models.NewNotFoundError("collection", name))
	}

	if err := s.store.ReplaceJSON(c.UserContext(), coll, c.Body()); err != nil {
		if models.IsValidationError(err) {
			return respondError(c, err)
		}
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"collection": coll, "key": s.store.Key(coll), "replaced": true, "message": fmt.Sprintf("%s replaced", coll)})
}
