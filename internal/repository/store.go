// Package repository holds the persisted collection store shared by all services.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/seed"
	"photogram/internal/storage"
)

// Collection names one persisted entity collection.
type Collection string

// The five persisted collections.
const (
	Users     Collection = "users"
	Posts     Collection = "posts"
	Comments  Collection = "comments"
	Stories   Collection = "stories"
	Favorites Collection = "favorites"
)

// AllCollections lists every collection in seeding order.
var AllCollections = []Collection{Users, Posts, Comments, Stories, Favorites}

// ParseCollection maps a collection name to its Collection.
func ParseCollection(name string) (Collection, bool) {
	for _, c := range AllCollections {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// CollectionKey pairs a collection with its storage key.
type CollectionKey struct {
	Collection Collection `json:"collection"`
	Key        string     `json:"key"`
}

// Store reads and writes whole collections as JSON arrays, one per key.
// There are no partial writes: every Save replaces the stored collection.
type Store struct {
	backend   storage.Backend
	namespace string
	seed      seed.Dataset
	log       *observability.StoreLogger
}

// NewStore builds a Store over backend. Keys are "<namespace>_<collection>".
// data is the seed written by Initialize and returned for absent keys.
func NewStore(backend storage.Backend, namespace string, data seed.Dataset, logger *slog.Logger) *Store {
	return &Store{
		backend:   backend,
		namespace: namespace,
		seed:      data.Clone(),
		log:       observability.NewStoreLogger(backend.Name(), logger),
	}
}

// Backend returns the underlying key-value backend.
func (s *Store) Backend() storage.Backend {
	return s.backend
}

// Key returns the storage key of c.
func (s *Store) Key(c Collection) string {
	return s.namespace + "_" + string(c)
}

// Collections lists every collection with its key.
func (s *Store) Collections() []CollectionKey {
	out := make([]CollectionKey, 0, len(AllCollections))
	for _, c := range AllCollections {
		out = append(out, CollectionKey{Collection: c, Key: s.Key(c)})
	}
	return out
}

// Initialize writes the seed value of every collection whose key is absent.
// It is idempotent and never overwrites stored data, even when several
// processes initialise the same backend concurrently.
func (s *Store) Initialize(ctx context.Context) error {
	ds := s.seed.Clone()
	values := map[Collection]any{
		Users:     nonNil(ds.Users),
		Posts:     nonNil(ds.Posts),
		Comments:  nonNil(ds.Comments),
		Stories:   nonNil(ds.Stories),
		Favorites: nonNil(ds.Favorites),
	}

	for _, c := range AllCollections {
		key := s.Key(c)
		data, err := json.Marshal(values[c])
		if err != nil {
			return fmt.Errorf("encode seed %s: %w", c, err)
		}
		written, err := s.backend.SetIfAbsent(ctx, key, data)
		if err != nil {
			s.log.LogError(ctx, err, "initialize", key)
			return fmt.Errorf("initialize %s: %w", key, err)
		}
		s.log.LogInitialize(ctx, key, written)
	}
	return nil
}

// Reset deletes every collection key. The next read returns seed data and
// the next Initialize re-seeds.
func (s *Store) Reset(ctx context.Context) error {
	for _, c := range AllCollections {
		key := s.Key(c)
		if err := s.backend.Delete(ctx, key); err != nil {
			s.log.LogError(ctx, err, "delete", key)
			return fmt.Errorf("reset %s: %w", key, err)
		}
		s.log.LogDelete(ctx, key)
	}
	return nil
}

// Users returns the stored users, or the seed users when none are stored.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	return load(ctx, s, Users, func() []models.User { return s.seed.Clone().Users })
}

// Posts returns the stored posts, or the seed posts when none are stored.
func (s *Store) Posts(ctx context.Context) ([]models.Post, error) {
	return load(ctx, s, Posts, func() []models.Post { return s.seed.Clone().Posts })
}

// Comments returns the stored comments, or the seed comments when none are stored.
func (s *Store) Comments(ctx context.Context) ([]models.Comment, error) {
	return load(ctx, s, Comments, func() []models.Comment { return s.seed.Clone().Comments })
}

// Stories returns the stored stories, or the seed stories when none are stored.
func (s *Store) Stories(ctx context.Context) ([]models.Story, error) {
	return load(ctx, s, Stories, func() []models.Story { return s.seed.Clone().Stories })
}

// Favorites returns the stored favorites, or the seed favorites when none are stored.
func (s *Store) Favorites(ctx context.Context) ([]models.Favorite, error) {
	return load(ctx, s, Favorites, func() []models.Favorite { return s.seed.Clone().Favorites })
}

func (s *Store) SaveUsers(ctx context.Context, v []models.User) error {
	return save(ctx, s, Users, v)
}

func (s *Store) SavePosts(ctx context.Context, v []models.Post) error {
	return save(ctx, s, Posts, v)
}

func (s *Store) SaveComments(ctx context.Context, v []models.Comment) error {
	return save(ctx, s, Comments, v)
}

func (s *Store) SaveStories(ctx context.Context, v []models.Story) error {
	return save(ctx, s, Stories, v)
}

func (s *Store) SaveFavorites(ctx context.Context, v []models.Favorite) error {
	return save(ctx, s, Favorites, v)
}

// Snapshot reads all five collections.
func (s *Store) Snapshot(ctx context.Context) (seed.Dataset, error) {
	var (
		ds  seed.Dataset
		err error
	)
	if ds.Users, err = s.Users(ctx); err != nil {
		return seed.Dataset{}, err
	}
	if ds.Posts, err = s.Posts(ctx); err != nil {
		return seed.Dataset{}, err
	}
	if ds.Comments, err = s.Comments(ctx); err != nil {
		return seed.Dataset{}, err
	}
	if ds.Stories, err = s.Stories(ctx); err != nil {
		return seed.Dataset{}, err
	}
	if ds.Favorites, err = s.Favorites(ctx); err != nil {
		return seed.Dataset{}, err
	}
	return ds, nil
}

// Import replaces all five collections with ds.
func (s *Store) Import(ctx context.Context, ds seed.Dataset) error {
	return errors.Join(
		s.SaveUsers(ctx, ds.Users),
		s.SavePosts(ctx, ds.Posts),
		s.SaveComments(ctx, ds.Comments),
		s.SaveStories(ctx, ds.Stories),
		s.SaveFavorites(ctx, ds.Favorites),
	)
}

// ReplaceJSON replaces collection c with the JSON array in body. The body is
// decoded into the collection's entity type first, so malformed input is a
// validation error and never reaches storage.
func (s *Store) ReplaceJSON(ctx context.Context, c Collection, body []byte) error {
	switch c {
	case Users:
		return replaceJSON(ctx, body, s.SaveUsers)
	case Posts:
		return replaceJSON(ctx, body, s.SavePosts)
	case Comments:
		return replaceJSON(ctx, body, s.SaveComments)
	case Stories:
		return replaceJSON(ctx, body, s.SaveStories)
	case Favorites:
		return replaceJSON(ctx, body, s.SaveFavorites)
	default:
		return models.NewValidationError(fmt.Sprintf("unknown collection %q", c))
	}
}

func replaceJSON[T any](ctx context.Context, body []byte, saveFn func(context.Context, []T) error) error {
	var v []T
	if err := json.Unmarshal(body, &v); err != nil {
		return models.NewValidationError("Collection body must be a JSON array of records")
	}
	return saveFn(ctx, v)
}

func load[T any](ctx context.Context, s *Store, c Collection, fallback func() []T) ([]T, error) {
	key := s.Key(c)
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		v := nonNil(fallback())
		s.log.LogRead(ctx, key, len(v), true)
		return v, nil
	}
	if err != nil {
		s.log.LogError(ctx, err, "get", key)
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var v []T
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.LogError(ctx, err, "decode", key)
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	v = nonNil(v)
	s.log.LogRead(ctx, key, len(v), false)
	return v, nil
}

func save[T any](ctx context.Context, s *Store, c Collection, v []T) error {
	key := s.Key(c)
	data, err := json.Marshal(nonNil(v))
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		s.log.LogError(ctx, err, "set", key)
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.log.LogWrite(ctx, key, len(v))
	return nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
