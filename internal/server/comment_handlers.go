package server

import (
	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// GetComments returns the comments on a post, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.commentService.Comments(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment adds a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	userID, err := s.resolveUserID(c, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.AddComment(c.UserContext(), c.Params("id"), userID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
