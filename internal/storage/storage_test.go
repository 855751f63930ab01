package storage

import (
	"context"
	"testing"

	"photogram/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name     string
		cfg      *config.Config
		wantName string
	}{
		{"memory", &config.Config{StorageBackend: config.BackendMemory}, "memory"},
		{"file", &config.Config{StorageBackend: config.BackendFile, StorageDir: t.TempDir()}, "file"},
		{"redis", &config.Config{StorageBackend: config.BackendRedis, RedisURL: mr.Addr()}, "redis"},
		{"sqlite", &config.Config{StorageBackend: config.BackendSQLite, SQLitePath: ":memory:"}, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b, err := Open(ctx, tt.cfg)
			require.NoError(t, err)
			defer b.Close()

			assert.Equal(t, tt.wantName, b.Name())
			require.NoError(t, b.Ping(ctx))

			wrote, err := b.SetIfAbsent(ctx, "photogram_users", []byte(`[]`))
			require.NoError(t, err)
			assert.True(t, wrote)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageBackend: "etcd"})
	assert.Error(t, err)
}
