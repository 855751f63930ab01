package server

import (
	"photogram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type userRequest struct {
	UserID string `json:"userId"`
}

// GetFeed returns the home feed for ?userId= or the current user.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewer, err := s.resolveUserID(c, "")
	if err != nil {
		return respondError(c, err)
	}
	feed, err := s.postService.Feed(c.UserContext(), viewer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// GetPosts returns every post in stored order.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.Posts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns one post.
func (s *Server) GetPost(c *fiber.Ctx) error {
	p, err := s.postService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// CreatePost adds a new post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.NewPostInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	userID, err := s.resolveUserID(c, in.UserID)
	if err != nil {
		return respondError(c, err)
	}
	in.UserID = userID

	post, err := s.postService.AddNewPost(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ToggleLike likes or unlikes a post.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req userRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	userID, err := s.resolveUserID(c, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	res, err := s.postService.ToggleLike(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ToggleBookmark bookmarks or unbookmarks a post.
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	var req userRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	userID, err := s.resolveUserID(c, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	bookmarked, err := s.favoriteService.ToggleBookmark(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"isBookmarked": bookmarked})
}

// GetPostStatus reports whether a user liked and bookmarked a post.
func (s *Server) GetPostStatus(c *fiber.Ctx) error {
	userID, err := s.resolveUserID(c, "")
	if err != nil {
		return respondError(c, err)
	}
	status, err := s.postService.Status(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}
