package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"photogram/internal/repository"
	"photogram/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthChecks(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[fiber.Map](t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadinessCheck_BackendDown(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	store := repository.NewStore(backend, "photogram", seed.Default(), nil)
	app := newTestAppWithStore(store)

	resp := doRequest(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode[fiber.Map](t, resp)
	assert.Equal(t, "unhealthy", body["status"])
	backend.AssertExpectations(t)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStorageFailureIsGeneric(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("disk on fire"))

	store := repository.NewStore(backend, "photogram", seed.Default(), nil)
	app := newTestAppWithStore(store)

	resp := doRequest(t, app, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[fiber.Map](t, resp)
	assert.Equal(t, "Something went wrong", body["error"])
}

func TestCORSHeaders(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestShutdown(t *testing.T) {
	_, store := newTestApp(t)
	s := NewServer(testConfig(), store)
	assert.NoError(t, s.Shutdown(context.Background()))
}
