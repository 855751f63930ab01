package repository

import (
	"context"
	"errors"
	"testing"

	"photogram/internal/models"
	"photogram/internal/seed"
	"photogram/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	return NewStore(backend, "photogram", seed.Default(), nil), backend
}

// failingBackend fails every write.
type failingBackend struct {
	*storage.Memory
}

func (f failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func (f failingBackend) SetIfAbsent(context.Context, string, []byte) (bool, error) {
	return false, errors.New("quota exceeded")
}

func TestStore_Keys(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, "photogram_users", s.Key(Users))

	keys := s.Collections()
	require.Len(t, keys, 5)
	assert.Equal(t, CollectionKey{Collection: Favorites, Key: "photogram_favorites"}, keys[4])
}

func TestStore_InitializeSeedsEmptyBackend(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))

	for _, ck := range s.Collections() {
		_, err := backend.Get(ctx, ck.Key)
		assert.NoError(t, err, ck.Key)
	}

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 8)
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	users = users[:2]
	require.NoError(t, s.SaveUsers(ctx, users))

	require.NoError(t, s.Initialize(ctx))

	got, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_InitializeFillsOnlyMissingKeys(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SavePosts(ctx, []models.Post{{ID: "mine"}}))

	require.NoError(t, s.Initialize(ctx))

	posts, err := s.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].ID)

	comments, err := s.Comments(ctx)
	require.NoError(t, err)
	assert.Len(t, comments, 8)
}

func TestStore_ReadsFallBackToSeedCopies(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	posts, err := s.Posts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 12)

	posts[0].LikedBy[0] = "mutated"
	again, err := s.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user2", again[0].LikedBy[0])

	_, err = backend.Get(ctx, s.Key(Posts))
	assert.ErrorIs(t, err, storage.ErrNotFound, "reads must not write")
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveStories(ctx, []models.Story{{ID: "s1", UserID: "u1", Viewed: true}}))
	stories, err := s.Stories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Story{{ID: "s1", UserID: "u1", Viewed: true}}, stories)

	require.NoError(t, s.SaveFavorites(ctx, nil))
	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)
}

func TestStore_Reset(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.SaveUsers(ctx, nil))

	require.NoError(t, s.Reset(ctx))

	_, err := backend.Get(ctx, s.Key(Users))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 8)
}

func TestStore_CorruptValueIsAnError(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, s.Key(Comments), []byte("{not json")))

	_, err := s.Comments(ctx)
	assert.Error(t, err)
}

func TestStore_WriteFailuresSurface(t *testing.T) {
	s := NewStore(failingBackend{storage.NewMemory()}, "photogram", seed.Default(), nil)
	ctx := context.Background()

	assert.Error(t, s.Initialize(ctx))
	assert.Error(t, s.SavePosts(ctx, nil))
}

func TestStore_SnapshotAndImport(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ds, err := s.Snapshot(ctx)
	require.NoError(t, err)
	ds.Users = ds.Users[:1]
	require.NoError(t, s.Import(ctx, ds))

	got, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Users, 1)
	assert.Len(t, got.Posts, 12)
}

func TestStore_ReplaceJSON(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceJSON(ctx, Users, []byte(`[{"id":"u9","username":"nine"}]`)))
	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nine", users[0].Username)

	err = s.ReplaceJSON(ctx, Posts, []byte(`{"id":"p1"}`))
	assert.True(t, models.IsValidationError(err))

	err = s.ReplaceJSON(ctx, Collection("likes"), []byte(`[]`))
	assert.True(t, models.IsValidationError(err))
}

func TestParseCollection(t *testing.T) {
	c, ok := ParseCollection("stories")
	assert.True(t, ok)
	assert.Equal(t, Stories, c)

	_, ok = ParseCollection("likes")
	assert.False(t, ok)
}
