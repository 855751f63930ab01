package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_ToggleBookmark_Involution(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	before, err := svc.Favorites.Favorite(ctx, "user1")
	require.NoError(t, err)

	on, err := svc.Favorites.ToggleBookmark(ctx, "post1", "user1")
	require.NoError(t, err)
	assert.True(t, on)

	mid, err := svc.Favorites.Favorite(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, append(before.PostIDs, "post1"), mid.PostIDs)

	off, err := svc.Favorites.ToggleBookmark(ctx, "post1", "user1")
	require.NoError(t, err)
	assert.False(t, off)

	after, err := svc.Favorites.Favorite(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, before.PostIDs, after.PostIDs)
}

func TestFavoriteService_ToggleBookmark_RemovesExisting(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	on, err := svc.Favorites.ToggleBookmark(ctx, "post4", "user1")
	require.NoError(t, err)
	assert.False(t, on)

	f, err := svc.Favorites.Favorite(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, []string{"post2", "post6"}, f.PostIDs)
}

func TestFavoriteService_ToggleBookmark_CreatesRecord(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()

	f, err := svc.Favorites.Favorite(ctx, "user8")
	require.NoError(t, err)
	assert.Equal(t, "user8", f.UserID)
	assert.Empty(t, f.PostIDs)

	on, err := svc.Favorites.ToggleBookmark(ctx, "post3", "user8")
	require.NoError(t, err)
	assert.True(t, on)

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 5)

	posts, err := svc.Favorites.FavoritePosts(ctx, "user8")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "post3", posts[0].ID)

	off, err := svc.Favorites.ToggleBookmark(ctx, "post3", "user8")
	require.NoError(t, err)
	assert.False(t, off)

	favorites, err = store.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 5, "an emptied record is kept")
}

func TestFavoriteService_RequiresUser(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Favorites.ToggleBookmark(context.Background(), "post1", "")
	assertValidationError(t, err)
}
