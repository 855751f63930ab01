package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisBackend(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func TestRedisBackend(t *testing.T) {
	runBackendContract(t, func(t *testing.T) Backend {
		b, _ := newMiniredisBackend(t)
		return b
	})
}

func TestRedisBackend_StoresPlainKeys(t *testing.T) {
	b, mr := newMiniredisBackend(t)
	require.NoError(t, b.Set(context.Background(), "photogram_posts", []byte(`[]`)))

	got, err := mr.Get("photogram_posts")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	assert.Zero(t, mr.TTL("photogram_posts"))
}

func TestRedisBackend_ServerDown(t *testing.T) {
	b, mr := newMiniredisBackend(t)
	mr.Close()

	_, err := b.Get(context.Background(), "photogram_users")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, b.Ping(context.Background()))
}
