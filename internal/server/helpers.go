package server

import (
	"errors"
	"strings"

	"photogram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses: validation is 400,
// a missing resource is 404 and everything else is a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// parseBody decodes an optional JSON body into out. An empty body leaves
// out untouched.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// resolveUserID picks the acting user: an explicit id from the body, then
// the userId query parameter, then the current demo user.
func (s *Server) resolveUserID(c *fiber.Ctx, explicit string) (string, error) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(c.Query("userId")); id != "" {
		return id, nil
	}
	cu, err := s.userService.CurrentUser(c.UserContext())
	if err != nil {
		return "", err
	}
	return cu.IDOr(""), nil
}
