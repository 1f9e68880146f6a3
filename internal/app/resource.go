package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"skate_admin/internal/adapters/observability"
)

type Status int

const (
	Idle Status = iota
	Loading
	Resolved
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Resolved:
		return "resolved"
	case Failed:
		return "error"
	}
	return "idle"
}

type Loader[T any] func(ctx context.Context) ([]T, error)

// Resource is a lazily fetched, reloadable copy of a backend collection.
// Readers always see the last successful fetch; a failed fetch keeps it.
type Resource[T any] struct {
	name string
	load Loader[T]
	sf   singleflight.Group

	mu      sync.RWMutex
	items   []T
	loaded  bool
	status  Status
	err     error
	seq     uint64
	applied uint64
}

func NewResource[T any](name string, load Loader[T]) *Resource[T] {
	return &Resource[T]{name: name, load: load}
}

func (r *Resource[T]) Name() string { return r.name }

// Value returns the collection, fetching it on first access. Concurrent first
// accesses share a single request, which is not tied to any one caller: a
// caller whose ctx ends stops waiting while the others still get the result.
func (r *Resource[T]) Value(ctx context.Context) ([]T, error) {
	if items, ok := r.Snapshot(); ok {
		return items, nil
	}
	ch := r.sf.DoChan("load", func() (any, error) {
		return r.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return clone(res.Val.([]T)), nil
	}
}

// Reload refetches unconditionally and replaces the whole collection.
func (r *Resource[T]) Reload(ctx context.Context) ([]T, error) {
	items, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return clone(items), nil
}

// Snapshot never blocks. ok is false until a fetch has succeeded.
func (r *Resource[T]) Snapshot() ([]T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.items), r.loaded
}

func (r *Resource[T]) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Resource[T]) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Find loads the collection if needed and returns the first match.
func (r *Resource[T]) Find(ctx context.Context, match func(T) bool) (T, bool, error) {
	var zero T
	items, err := r.Value(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, it := range items {
		if match(it) {
			return it, true, nil
		}
	}
	return zero, false, nil
}

// refresh reloads after a successful write. The write already happened, so
// a failed reload is only logged.
func (r *Resource[T]) refresh(ctx context.Context, op string) {
	if _, err := r.Reload(ctx); err != nil {
		log.Warn().Err(err).Str("resource", r.name).Str("op", op).Msg("reload after write failed")
	}
}

func (r *Resource[T]) fetch(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.status = Loading
	r.mu.Unlock()

	items, err := r.load(ctx)
	observability.ObserveReload(r.name, err)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq < r.applied {
		// a newer fetch already landed
		if err != nil {
			return nil, err
		}
		return items, nil
	}
	r.applied = seq
	if err != nil {
		r.err = err
		r.status = Failed
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	r.items, r.loaded, r.err, r.status = items, true, nil, Resolved
	return items, nil
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
