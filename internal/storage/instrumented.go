package storage

import (
	"context"
	"errors"

	"photogram/internal/observability"
)

type instrumented struct {
	Backend
}

// Instrument wraps b so every call records latency, errors and a span.
func Instrument(b Backend) Backend {
	if _, ok := b.(*instrumented); ok {
		return b
	}
	return &instrumented{Backend: b}
}

func (i *instrumented) observe(ctx context.Context, op, key string) (context.Context, func(error)) {
	ctx, span := observability.StartStorageSpan(ctx, i.Name(), op, key)
	done := observability.TrackStorage(i.Name(), op)
	return ctx, func(err error) {
		if errors.Is(err, ErrNotFound) {
			err = nil
		}
		done(err)
		span.SetError(err)
		span.End()
	}
}

func (i *instrumented) Get(ctx context.Context, key string) (v []byte, err error) {
	ctx, done := i.observe(ctx, "get", key)
	defer func() { done(err) }()
	return i.Backend.Get(ctx, key)
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, done := i.observe(ctx, "set", key)
	defer func() { done(err) }()
	return i.Backend.Set(ctx, key, value)
}

func (i *instrumented) SetIfAbsent(ctx context.Context, key string, value []byte) (ok bool, err error) {
	ctx, done := i.observe(ctx, "set_if_absent", key)
	defer func() { done(err) }()
	return i.Backend.SetIfAbsent(ctx, key, value)
}

func (i *instrumented) Delete(ctx context.Context, key string) (err error) {
	ctx, done := i.observe(ctx, "delete", key)
	defer func() { done(err) }()
	return i.Backend.Delete(ctx, key)
}
