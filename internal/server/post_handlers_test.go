package server

import (
	"net/http"
	"testing"

	"photogram/internal/models"
	"photogram/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPost(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("found", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/posts/post1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		post := decode[models.Post](t, resp)
		assert.Equal(t, "post1", post.ID)
		assert.Equal(t, 243, post.LikesCount)
	})

	t.Run("missing", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/posts/nope", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		assert.Equal(t, models.CodeNotFound, body.Code)
	})
}

func TestToggleLike(t *testing.T) {
	app, store := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/posts/post1/like", map[string]string{"userId": "user1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[service.LikeResult](t, resp)
	assert.True(t, res.IsLiked)
	assert.Equal(t, 244, res.LikesCount)

	posts, err := store.Posts(t.Context())
	require.NoError(t, err)
	assert.Contains(t, posts[0].LikedBy, "user1")

	resp = doRequest(t, app, http.MethodPost, "/api/posts/post1/like", map[string]string{"userId": "user1"})
	res = decode[service.LikeResult](t, resp)
	assert.False(t, res.IsLiked)
	assert.Equal(t, 243, res.LikesCount)
}

func TestToggleLike_DefaultsToCurrentUser(t *testing.T) {
	app, _ := newTestApp(t)

	// post2 is already liked by user1
	resp := doRequest(t, app, http.MethodPost, "/api/posts/post2/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[service.LikeResult](t, resp)
	assert.False(t, res.IsLiked)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/posts/missing/like", map[string]string{"userId": "user1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[service.LikeResult](t, resp)
	assert.Equal(t, service.LikeResult{}, res)
}

func TestToggleBookmark(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/posts/post1/bookmark", map[string]string{"userId": "user1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]bool](t, resp)
	assert.True(t, body["isBookmarked"])

	resp = doRequest(t, app, http.MethodGet, "/api/posts/post1/status?userId=user1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[service.PostStatus](t, resp)
	assert.True(t, status.IsBookmarked)
	assert.False(t, status.IsLiked)
}

func TestCreatePost(t *testing.T) {
	app, store := newTestApp(t)

	t.Run("success", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/posts", map[string]string{
			"userId":    "user2",
			"imageName": "sunset.jpg",
			"caption":   "Golden hour",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		post := decode[models.Post](t, resp)
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "user2", post.UserID)
		assert.Equal(t, "Golden hour", post.Caption)
		assert.Zero(t, post.LikesCount)

		posts, err := store.Posts(t.Context())
		require.NoError(t, err)
		assert.Equal(t, post.ID, posts[0].ID)
	})

	t.Run("missing image", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/posts", map[string]string{"caption": "no image"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		assert.Equal(t, "Please select an image to upload", body.Error)
	})
}

func TestGetFeed(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/feed?userId=user1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decode[[]service.FeedItem](t, resp)
	require.NotEmpty(t, feed)

	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Timestamp.After(feed[i-1].Timestamp), "feed must be newest first")
	}
	for _, item := range feed {
		require.NotNil(t, item.Author)
		assert.Equal(t, item.UserID, item.Author.ID)
		assert.NotEmpty(t, item.TimeAgo)
	}
}
