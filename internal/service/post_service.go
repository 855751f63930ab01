package service

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/query"
	"photogram/internal/seed"

	"go.opentelemetry.io/otel/attribute"
)

// MaxCaptionLength bounds a post caption, in characters.
const MaxCaptionLength = 2200

type PostService struct {
	deps *Deps
}

// NewPostInput is the payload of AddNewPost. Either ImageURL or ImageName
// must be set; a bare file name becomes a placeholder image URL. Location
// and AltText are accepted from the create form but not stored.
type NewPostInput struct {
	UserID    string `json:"userId"`
	ImageURL  string `json:"imageUrl"`
	ImageName string `json:"imageName"`
	Caption   string `json:"caption"`
	Location  string `json:"location"`
	AltText   string `json:"altText"`
}

// LikeResult is the state of a post after ToggleLike.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

// PostStatus reports how one user relates to one post.
type PostStatus struct {
	IsLiked      bool `json:"isLiked"`
	IsBookmarked bool `json:"isBookmarked"`
}

// FeedItem is a post as shown on the home feed.
type FeedItem struct {
	models.Post
	Author       *models.User     `json:"user,omitempty"`
	Comments     []models.Comment `json:"comments"`
	IsLiked      bool             `json:"isLiked"`
	IsBookmarked bool             `json:"isBookmarked"`
	TimeAgo      string           `json:"timeAgo"`
}

func NewPostService(deps *Deps) *PostService {
	return &PostService{deps: deps}
}

// ToggleLike adds or removes userID from the post's likes. A missing post
// yields {false, 0} and writes nothing.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error) {
	const op = "toggle_like"
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "ToggleLike",
		attribute.String("post.id", postID), attribute.String("user.id", userID))
	defer span.End()

	if err := requireUser(op, userID); err != nil {
		return LikeResult{}, err
	}

	var res LikeResult
	err := s.deps.mutate(ctx, op, s.deps.Latency.Like, func(ctx context.Context) error {
		posts, err := s.deps.Store.Posts(ctx)
		if err != nil {
			return internalErr(err)
		}

		i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == postID })
		if i < 0 {
			return nil
		}

		p := posts[i].Clone()
		if p.IsLikedBy(userID) {
			p.LikedBy = slices.DeleteFunc(p.LikedBy, func(id string) bool { return id == userID })
			p.LikesCount = max(p.LikesCount-1, 0)
		} else {
			p.LikedBy = append(p.LikedBy, userID)
			p.LikesCount++
		}
		posts[i] = p

		if err := s.deps.Store.SavePosts(ctx, posts); err != nil {
			return internalErr(err)
		}
		res = LikeResult{IsLiked: p.IsLikedBy(userID), LikesCount: p.LikesCount}
		return nil
	})
	span.SetError(err)
	return res, err
}

// AddNewPost validates in, then prepends a new post authored by in.UserID.
func (s *PostService) AddNewPost(ctx context.Context, in NewPostInput) (models.Post, error) {
	const op = "add_new_post"
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "AddNewPost",
		attribute.String("user.id", in.UserID))
	defer span.End()

	if err := requireUser(op, in.UserID); err != nil {
		return models.Post{}, err
	}
	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		if name := strings.TrimSpace(in.ImageName); name != "" {
			imageURL = seed.PlaceholderImage(600, 600, name)
		}
	}
	if imageURL == "" {
		return models.Post{}, invalid(op, models.NewValidationError("Please select an image to upload"))
	}
	if utf8.RuneCountInString(in.Caption) > MaxCaptionLength {
		return models.Post{}, invalid(op, models.NewValidationError("Caption must be 2200 characters or less"))
	}

	var post models.Post
	err := s.deps.mutate(ctx, op, s.deps.Latency.NewPost, func(ctx context.Context) error {
		posts, err := s.deps.Store.Posts(ctx)
		if err != nil {
			return internalErr(err)
		}

		post = models.Post{
			ID:        s.deps.newID(),
			UserID:    in.UserID,
			ImageURL:  imageURL,
			Caption:   in.Caption,
			Timestamp: s.deps.now(),
			LikedBy:   []string{},
		}
		posts = append([]models.Post{post}, posts...)

		return internalErr(s.deps.Store.SavePosts(ctx, posts))
	})
	span.SetError(err)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Posts returns every post in stored order.
func (s *PostService) Posts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.deps.Store.Posts(ctx)
	return posts, internalErr(err)
}

// GetPost returns the post with id or a not-found error.
func (s *PostService) GetPost(ctx context.Context, id string) (models.Post, error) {
	posts, err := s.deps.Store.Posts(ctx)
	if err != nil {
		return models.Post{}, internalErr(err)
	}
	p, ok := query.PostByID(posts, id)
	if !ok {
		return models.Post{}, models.NewNotFoundError("post", id)
	}
	return p, nil
}

// PostsByUser returns the posts authored by userID.
func (s *PostService) PostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.deps.Store.Posts(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	return query.PostsByUserID(posts, userID), nil
}

// Status reports whether userID liked and bookmarked postID.
func (s *PostService) Status(ctx context.Context, postID, userID string) (PostStatus, error) {
	posts, err := s.deps.Store.Posts(ctx)
	if err != nil {
		return PostStatus{}, internalErr(err)
	}
	favorites, err := s.deps.Store.Favorites(ctx)
	if err != nil {
		return PostStatus{}, internalErr(err)
	}
	return PostStatus{
		IsLiked:      query.IsPostLikedByUser(posts, postID, userID),
		IsBookmarked: query.IsPostBookmarkedByUser(favorites, postID, userID),
	}, nil
}

// Feed returns every post newest first with its author, comments and the
// viewer's like and bookmark state.
func (s *PostService) Feed(ctx context.Context, viewerID string) ([]FeedItem, error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "Feed",
		attribute.String("user.id", viewerID))
	defer span.End()

	posts, err := s.deps.Store.Posts(ctx)
	if err != nil {
		span.SetError(err)
		return nil, internalErr(err)
	}
	users, err := s.deps.Store.Users(ctx)
	if err != nil {
		span.SetError(err)
		return nil, internalErr(err)
	}
	comments, err := s.deps.Store.Comments(ctx)
	if err != nil {
		span.SetError(err)
		return nil, internalErr(err)
	}
	favorites, err := s.deps.Store.Favorites(ctx)
	if err != nil {
		span.SetError(err)
		return nil, internalErr(err)
	}

	now := s.deps.now()
	sorted := query.SortPostsNewestFirst(posts)
	items := make([]FeedItem, 0, len(sorted))
	for _, p := range sorted {
		item := FeedItem{
			Post:         p,
			Comments:     query.CommentsByPostID(comments, p.ID),
			IsLiked:      p.IsLikedBy(viewerID),
			IsBookmarked: query.IsPostBookmarkedByUser(favorites, p.ID, viewerID),
			TimeAgo:      query.FormatTimestampAt(p.Timestamp, now),
		}
		if author, ok := query.UserByID(users, p.UserID); ok {
			item.Author = &author
		}
		items = append(items, item)
	}
	return items, nil
}
