package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetStories returns all stories, or only unviewed ones with ?active=true.
func (s *Server) GetStories(c *fiber.Ctx) error {
	stories, err := s.storyService.Stories(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stories)
}

// MarkStoryViewed marks a story as viewed. Unknown ids are accepted.
func (s *Server) MarkStoryViewed(c *fiber.Ctx) error {
	if err := s.storyService.MarkStoryAsViewed(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
