// Package storage defines the key-value backends that hold the persisted
// collections. Every backend stores opaque byte values under string keys
// and supports an atomic write-if-absent used for first-run seeding.
package storage

import (
	"context"
	"errors"
	"fmt"

	"photogram/internal/cache"
	"photogram/internal/config"
	"photogram/internal/database"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a flat key-value store.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetIfAbsent writes value only when key is absent and reports whether it wrote.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.StorageBackend, wrapped with
// metrics and tracing.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	var (
		b   Backend
		err error
	)

	switch cfg.StorageBackend {
	case config.BackendMemory:
		b = NewMemory()
	case config.BackendFile:
		b, err = NewFile(afero.NewOsFs(), cfg.StorageDir)
	case config.BackendRedis:
		client, cerr := cache.NewClient(ctx, cfg.RedisURL)
		if cerr != nil {
			return nil, cerr
		}
		b = NewRedis(client)
	case config.BackendSQLite, config.BackendPostgres:
		db, cerr := database.Connect(cfg)
		if cerr != nil {
			return nil, cerr
		}
		sqlBackend := NewSQL(db, cfg.StorageBackend)
		if err = sqlBackend.Migrate(ctx); err != nil {
			_ = sqlBackend.Close()
			return nil, err
		}
		b = sqlBackend
	case config.BackendMongo:
		b, err = NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(b), nil
}
