package service

import (
	"context"
	"slices"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/query"

	"go.opentelemetry.io/otel/attribute"
)

type FavoriteService struct {
	deps *Deps
}

func NewFavoriteService(deps *Deps) *FavoriteService {
	return &FavoriteService{deps: deps}
}

// ToggleBookmark adds postID to or removes it from the user's favorites,
// creating the favorite record on first use. It reports whether the post
// is bookmarked afterwards. The post id is not checked against posts.
func (s *FavoriteService) ToggleBookmark(ctx context.Context, postID, userID string) (bool, error) {
	const op = "toggle_bookmark"
	ctx, span := observability.StartServiceSpan(ctx, "FavoriteService", "ToggleBookmark",
		attribute.String("post.id", postID), attribute.String("user.id", userID))
	defer span.End()

	if err := requireUser(op, userID); err != nil {
		return false, err
	}

	var bookmarked bool
	err := s.deps.mutate(ctx, op, s.deps.Latency.Bookmark, func(ctx context.Context) error {
		favorites, err := s.deps.Store.Favorites(ctx)
		if err != nil {
			return internalErr(err)
		}

		i := slices.IndexFunc(favorites, func(f models.Favorite) bool { return f.UserID == userID })
		if i < 0 {
			favorites = append(favorites, models.Favorite{UserID: userID, PostIDs: []string{}})
			i = len(favorites) - 1
		}

		f := favorites[i].Clone()
		if f.Has(postID) {
			f.PostIDs = slices.DeleteFunc(f.PostIDs, func(id string) bool { return id == postID })
		} else {
			f.PostIDs = append(f.PostIDs, postID)
		}
		favorites[i] = f

		if err := s.deps.Store.SaveFavorites(ctx, favorites); err != nil {
			return internalErr(err)
		}
		bookmarked = f.Has(postID)
		return nil
	})
	span.SetError(err)
	return bookmarked, err
}

// Favorite returns the user's favorite record, or an empty one when the
// user has never bookmarked anything.
func (s *FavoriteService) Favorite(ctx context.Context, userID string) (models.Favorite, error) {
	favorites, err := s.deps.Store.Favorites(ctx)
	if err != nil {
		return models.Favorite{}, internalErr(err)
	}
	f, ok := query.FavoriteByUserID(favorites, userID)
	if !ok {
		return models.Favorite{UserID: userID, PostIDs: []string{}}, nil
	}
	return f.Clone(), nil
}

// FavoritePosts returns the posts bookmarked by userID.
func (s *FavoriteService) FavoritePosts(ctx context.Context, userID string) ([]models.Post, error) {
	favorites, err := s.deps.Store.Favorites(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	posts, err := s.deps.Store.Posts(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	return query.FavoritePostsByUserID(favorites, posts, userID), nil
}
