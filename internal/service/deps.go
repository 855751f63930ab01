// Package service implements the mutation operations and the read helpers
// the HTTP layer calls. Every mutation reads whole collections, changes a
// copy and writes the collections back.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/repository"

	"github.com/google/uuid"
)

// Latency holds the artificial delays applied before each mutation.
type Latency struct {
	Comment  time.Duration
	Like     time.Duration
	Bookmark time.Duration
	NewPost  time.Duration
}

// SimulatedLatency returns the delays of the demo front end.
func SimulatedLatency() Latency {
	return Latency{
		Comment:  300 * time.Millisecond,
		Like:     200 * time.Millisecond,
		Bookmark: 200 * time.Millisecond,
		NewPost:  500 * time.Millisecond,
	}
}

// Deps is shared by every service. Lock serialises mutations within the
// process so two requests never interleave a read-modify-write.
type Deps struct {
	Store      repository.CollectionStore
	Lock       *sync.Mutex
	Latency    Latency
	DemoUserID string
	Now        func() time.Time
	NewID      func() string
}

// NewDeps returns Deps with no latency, the wall clock and uuid ids.
func NewDeps(store repository.CollectionStore) *Deps {
	return &Deps{
		Store: store,
		Lock:  &sync.Mutex{},
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// Services bundles one instance of each service over shared Deps.
type Services struct {
	Posts     *PostService
	Comments  *CommentService
	Favorites *FavoriteService
	Stories   *StoryService
	Users     *UserService
}

// New builds every service over d.
func New(d *Deps) *Services {
	return &Services{
		Posts:     NewPostService(d),
		Comments:  NewCommentService(d),
		Favorites: NewFavoriteService(d),
		Stories:   NewStoryService(d),
		Users:     NewUserService(d),
	}
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now()
}

func (d *Deps) newID() string {
	if d.NewID == nil {
		return uuid.NewString()
	}
	return d.NewID()
}

func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// mutate waits for delay, then runs fn under the shared lock and counts the outcome.
func (d *Deps) mutate(ctx context.Context, op string, delay time.Duration, fn func(ctx context.Context) error) error {
	if err := sleep(ctx, delay); err != nil {
		observability.RecordMutation(op, "canceled")
		return err
	}

	d.Lock.Lock()
	err := fn(ctx)
	d.Lock.Unlock()

	switch {
	case err == nil:
		observability.RecordMutation(op, "ok")
	case models.IsValidationError(err):
		observability.RecordMutation(op, "invalid")
	default:
		observability.RecordMutation(op, "error")
	}
	return err
}

func invalid(op string, err *models.AppError) error {
	observability.RecordMutation(op, "invalid")
	return err
}

func requireUser(op, userID string) error {
	if userID == "" {
		return invalid(op, models.NewValidationError("userId is required"))
	}
	return nil
}

// internalErr wraps storage failures so handlers answer with the generic message.
func internalErr(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return models.NewInternalError(err)
}
