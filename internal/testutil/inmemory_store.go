package testutil

import (
	"context"
	"sync"

	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
)

// InMemoryStore provides a thread-safe, generic in-memory store for tests.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

// Create stores an item under a key, failing when the key already exists.
func (s *InMemoryStore[T]) Create(_ context.Context, key string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; exists {
		return ierr.NewErrorf("item already exists: %s", key).
			Mark(ierr.ErrAlreadyExists)
	}
	s.items[key] = item
	return nil
}

// Get retrieves an item by key.
func (s *InMemoryStore[T]) Get(_ context.Context, key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[key]
	if !exists {
		var zero T
		return zero, ierr.NewErrorf("item not found: %s", key).
			Mark(ierr.ErrNotFound)
	}
	return item, nil
}

// Update replaces an existing item.
func (s *InMemoryStore[T]) Update(_ context.Context, key string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists {
		return ierr.NewErrorf("item not found: %s", key).
			Mark(ierr.ErrNotFound)
	}
	s.items[key] = item
	return nil
}

// List returns all items matching the filter; a nil filter matches all.
func (s *InMemoryStore[T]) List(_ context.Context, match func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if match == nil || match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Clear removes all items.
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

// SetupContext returns a context carrying the request-scoped values the
// services expect.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateID(types.RequestIDPrefix))
	ctx = context.WithValue(ctx, types.CtxLocale, types.DefaultLocale)
	return ctx
}
