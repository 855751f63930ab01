package service

import (
	"context"
	"strings"
	"testing"

	"photogram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment_Scenario(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	before := postByID(t, store, "post1").CommentsCount

	c, err := svc.Comments.AddComment(ctx, "post1", "user2", "hello")
	require.NoError(t, err)
	assert.Equal(t, "post1", c.PostID)
	assert.Equal(t, "user2", c.UserID)
	assert.Equal(t, "hello", c.Text)
	assert.Equal(t, fixedNow, c.Timestamp)

	assert.Equal(t, before+1, postByID(t, store, "post1").CommentsCount)

	comments, err := svc.Comments.Comments(ctx, "post1")
	require.NoError(t, err)
	require.NotEmpty(t, comments)
	assert.Equal(t, c.ID, comments[0].ID, "newest comment comes first")
}

func TestCommentService_AddComment_CountConsistency(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	before := postByID(t, store, "post4").CommentsCount

	const n = 5
	for i := 0; i < n; i++ {
		_, err := svc.Comments.AddComment(ctx, "post4", "user1", "nice")
		require.NoError(t, err)
	}
	assert.Equal(t, before+n, postByID(t, store, "post4").CommentsCount)

	all, err := store.Comments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8+n)
}

func TestCommentService_AddComment_TrimsText(t *testing.T) {
	svc, _ := newTestServices(t)
	c, err := svc.Comments.AddComment(context.Background(), "post1", "user2", "  spaced out \n")
	require.NoError(t, err)
	assert.Equal(t, "spaced out", c.Text)
}

func TestCommentService_AddComment_Validation(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		_, err := svc.Comments.AddComment(ctx, "post1", "user2", "")
		assertValidationError(t, err)
	})
	t.Run("whitespace only", func(t *testing.T) {
		_, err := svc.Comments.AddComment(ctx, "post1", "user2", " \t\n ")
		assertValidationError(t, err)
	})
	t.Run("too long", func(t *testing.T) {
		_, err := svc.Comments.AddComment(ctx, "post1", "user2", strings.Repeat("x", models.MaxCommentLength+1))
		assertValidationError(t, err)
	})
	t.Run("missing user", func(t *testing.T) {
		_, err := svc.Comments.AddComment(ctx, "post1", "", "hi")
		assertValidationError(t, err)
	})

	comments, err := store.Comments(ctx)
	require.NoError(t, err)
	assert.Len(t, comments, 8, "invalid input must not write")
}

func TestCommentService_AddComment_MissingPostStillCreatesComment(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()

	c, err := svc.Comments.AddComment(ctx, "ghost", "user1", "anyone there?")
	require.NoError(t, err)

	got, err := svc.Comments.Comments(ctx, "ghost")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)

	posts, err := store.Posts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 12)
}

func TestCommentService_AddComment_PostWriteFailsAfterCommentWrite(t *testing.T) {
	_, store := newTestServices(t)
	deps := NewDeps(&storeStub{
		CollectionStore: store,
		savePostsFn:     func(context.Context, []models.Post) error { return errQuota },
	})

	_, err := NewCommentService(deps).AddComment(context.Background(), "post1", "user2", "hello")
	assertInternalError(t, err)

	comments, err := store.Comments(context.Background())
	require.NoError(t, err)
	assert.Len(t, comments, 9, "the comment write is independent of the post write")
}

func TestCommentService_AddComment_CommentWriteFails(t *testing.T) {
	_, store := newTestServices(t)
	before := postByID(t, store, "post1").CommentsCount
	deps := NewDeps(&storeStub{
		CollectionStore: store,
		saveCommentsFn:  func(context.Context, []models.Comment) error { return errQuota },
	})

	_, err := NewCommentService(deps).AddComment(context.Background(), "post1", "user2", "hello")
	assertInternalError(t, err)
	assert.Equal(t, before, postByID(t, store, "post1").CommentsCount)
}
