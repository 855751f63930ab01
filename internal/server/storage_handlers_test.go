package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"photogram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCollections(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/storage", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "memory", body["backend"])
	assert.Len(t, body["collections"], 5)
}

func TestInitializeStorage_KeepsExistingData(t *testing.T) {
	app, store := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/posts/post3/like", map[string]string{"userId": "user5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/storage/initialize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	posts, err := store.Posts(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 343, posts[2].LikesCount)
}

func TestReplaceCollection(t *testing.T) {
	put := func(t *testing.T, path, body string) *http.Response {
		t.Helper()
		app, _ := newTestApp(t)
		req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("replaces stories", func(t *testing.T) {
		resp := put(t, "/api/collections/stories", `[{"id":"s1","userId":"user1","imageUrl":"/x.png","viewed":false,"timestamp":"2024-01-01T00:00:00Z"}]`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid json", func(t *testing.T) {
		resp := put(t, "/api/collections/posts", `{"not":"an array"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		assert.Equal(t, models.CodeValidation, body.Code)
	})

	t.Run("unknown collection", func(t *testing.T) {
		resp := put(t, "/api/collections/widgets", `[]`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
