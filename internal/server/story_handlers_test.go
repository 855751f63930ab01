package server

import (
	"net/http"
	"testing"

	"photogram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStories(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/stories?active=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Story](t, resp), 7)

	resp = doRequest(t, app, http.MethodPost, "/api/stories/story2/view", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/stories?active=true", nil)
	active := decode[[]models.Story](t, resp)
	assert.Len(t, active, 6)
	for _, s := range active {
		assert.NotEqual(t, "story2", s.ID)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/stories", nil)
	all := decode[[]models.Story](t, resp)
	require.Len(t, all, 7)
	assert.True(t, all[1].Viewed)
}

func TestMarkStoryViewed_UnknownIsAccepted(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/stories/nope/view", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
