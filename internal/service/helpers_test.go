package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/seed"
	"photogram/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

// newTestServices returns services over an initialised in-memory store
// with a fixed clock and sequential ids.
func newTestServices(t *testing.T) (*Services, *repository.Store) {
	t.Helper()
	store := repository.NewStore(storage.NewMemory(), "photogram", seed.Default(), nil)
	require.NoError(t, store.Initialize(context.Background()))

	var seq atomic.Int64
	deps := NewDeps(store)
	deps.Now = func() time.Time { return fixedNow }
	deps.NewID = func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }
	return New(deps), store
}

// storeStub wraps a real store and can fail individual writes.
type storeStub struct {
	repository.CollectionStore
	savePostsFn    func(context.Context, []models.Post) error
	saveCommentsFn func(context.Context, []models.Comment) error
}

func (s *storeStub) SavePosts(ctx context.Context, v []models.Post) error {
	if s.savePostsFn != nil {
		return s.savePostsFn(ctx, v)
	}
	return s.CollectionStore.SavePosts(ctx, v)
}

func (s *storeStub) SaveComments(ctx context.Context, v []models.Comment) error {
	if s.saveCommentsFn != nil {
		return s.saveCommentsFn(ctx, v)
	}
	return s.CollectionStore.SaveComments(ctx, v)
}

var errQuota = errors.New("quota exceeded")

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertInternalError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.Equal(t, models.GenericErrorMessage, appErr.Message)
}

func postByID(t *testing.T, store *repository.Store, id string) models.Post {
	t.Helper()
	posts, err := store.Posts(context.Background())
	require.NoError(t, err)
	for _, p := range posts {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("post %s not found", id)
	return models.Post{}
}
