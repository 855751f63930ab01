package server

import (
	"photogram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the demo session user.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	cu, err := s.userService.CurrentUser(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	u, ok := cu.Get()
	if !ok {
		return respondError(c, models.NewNotFoundError("user", "current"))
	}
	return c.JSON(u)
}

// GetUsers returns every user.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.Users(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUser returns one user by id.
func (s *Server) GetUser(c *fiber.Ctx) error {
	u, err := s.userService.User(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(u)
}

// GetUserByUsername returns one user by username, as the profile page does.
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	u, err := s.userService.ByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(u)
}

// GetUserPosts returns the posts authored by a user.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	posts, err := s.postService.PostsByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetUserFavorites returns the user's favorite record.
func (s *Server) GetUserFavorites(c *fiber.Ctx) error {
	f, err := s.favoriteService.Favorite(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(f)
}

// GetUserBookmarks returns the posts a user bookmarked.
func (s *Server) GetUserBookmarks(c *fiber.Ctx) error {
	posts, err := s.favoriteService.FavoritePosts(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetUserStories returns a user's stories.
func (s *Server) GetUserStories(c *fiber.Ctx) error {
	stories, err := s.storyService.StoriesByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stories)
}

// Search matches users and posts against ?q=.
func (s *Server) Search(c *fiber.Ctx) error {
	res, err := s.userService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
