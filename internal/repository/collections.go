package repository

import (
	"context"

	"photogram/internal/models"
)

// CollectionStore is the read and bulk-replace contract the services depend on.
type CollectionStore interface {
	Users(ctx context.Context) ([]models.User, error)
	Posts(ctx context.Context) ([]models.Post, error)
	Comments(ctx context.Context) ([]models.Comment, error)
	Stories(ctx context.Context) ([]models.Story, error)
	Favorites(ctx context.Context) ([]models.Favorite, error)

	SaveUsers(ctx context.Context, v []models.User) error
	SavePosts(ctx context.Context, v []models.Post) error
	SaveComments(ctx context.Context, v []models.Comment) error
	SaveStories(ctx context.Context, v []models.Story) error
	SaveFavorites(ctx context.Context, v []models.Favorite) error
}

var _ CollectionStore = (*Store)(nil)
