package service

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/query"

	"go.opentelemetry.io/otel/attribute"
)

type CommentService struct {
	deps *Deps
}

func NewCommentService(deps *Deps) *CommentService {
	return &CommentService{deps: deps}
}

// AddComment prepends a comment on postID and bumps the post's comment
// count. The comment is kept even when the post does not exist; the two
// collections are written independently, comments first.
func (s *CommentService) AddComment(ctx context.Context, postID, userID, text string) (models.Comment, error) {
	const op = "add_comment"
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "AddComment",
		attribute.String("post.id", postID), attribute.String("user.id", userID))
	defer span.End()

	if err := requireUser(op, userID); err != nil {
		return models.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, invalid(op, models.NewValidationError("Comment cannot be empty"))
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return models.Comment{}, invalid(op, models.NewValidationError("Comment must be 500 characters or less"))
	}

	var comment models.Comment
	err := s.deps.mutate(ctx, op, s.deps.Latency.Comment, func(ctx context.Context) error {
		comments, err := s.deps.Store.Comments(ctx)
		if err != nil {
			return internalErr(err)
		}

		comment = models.Comment{
			ID:        s.deps.newID(),
			PostID:    postID,
			UserID:    userID,
			Text:      text,
			Timestamp: s.deps.now(),
		}
		comments = append([]models.Comment{comment}, comments...)
		if err := s.deps.Store.SaveComments(ctx, comments); err != nil {
			return internalErr(err)
		}

		posts, err := s.deps.Store.Posts(ctx)
		if err != nil {
			return internalErr(err)
		}
		i := slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == postID })
		if i < 0 {
			return nil
		}
		posts[i].CommentsCount++
		return internalErr(s.deps.Store.SavePosts(ctx, posts))
	})
	span.SetError(err)
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// Comments returns the comments on postID, newest first.
func (s *CommentService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.deps.Store.Comments(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	return query.CommentsByPostID(comments, postID), nil
}
