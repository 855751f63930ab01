package service

import (
	"context"

	"photogram/internal/models"
	"photogram/internal/query"
)

type UserService struct {
	deps *Deps
}

func NewUserService(deps *Deps) *UserService {
	return &UserService{deps: deps}
}

// Users returns every user.
func (s *UserService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.deps.Store.Users(ctx)
	return users, internalErr(err)
}

// User returns the user with id or a not-found error.
func (s *UserService) User(ctx context.Context, id string) (models.User, error) {
	users, err := s.deps.Store.Users(ctx)
	if err != nil {
		return models.User{}, internalErr(err)
	}
	u, ok := query.UserByID(users, id)
	if !ok {
		return models.User{}, models.NewNotFoundError("user", id)
	}
	return u, nil
}

// ByUsername returns the user with username or a not-found error.
func (s *UserService) ByUsername(ctx context.Context, username string) (models.User, error) {
	users, err := s.deps.Store.Users(ctx)
	if err != nil {
		return models.User{}, internalErr(err)
	}
	u, ok := query.UserByUsername(users, username)
	if !ok {
		return models.User{}, models.NewNotFoundError("user", username)
	}
	return u, nil
}

// CurrentUser resolves the demo session user: the configured demo user
// when it exists, otherwise the first stored user, otherwise none.
func (s *UserService) CurrentUser(ctx context.Context) (models.CurrentUser, error) {
	users, err := s.deps.Store.Users(ctx)
	if err != nil {
		return models.NoUser(), internalErr(err)
	}
	if s.deps.DemoUserID != "" {
		if u, ok := query.UserByID(users, s.deps.DemoUserID); ok {
			return models.SomeUser(u), nil
		}
	}
	if len(users) == 0 {
		return models.NoUser(), nil
	}
	return models.SomeUser(users[0]), nil
}

// Search matches users and posts against q.
func (s *UserService) Search(ctx context.Context, q string) (query.SearchResult, error) {
	users, err := s.deps.Store.Users(ctx)
	if err != nil {
		return query.SearchResult{}, internalErr(err)
	}
	posts, err := s.deps.Store.Posts(ctx)
	if err != nil {
		return query.SearchResult{}, internalErr(err)
	}
	return query.Search(users, posts, q), nil
}
