// Package local holds entities that only live for the session: patients,
// bills and appointments have no backend persistence.
package local

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jwalitptl/hospital-console/internal/repository"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

// Record is an entity the store can assign an id to.
type Record[T any] interface {
	repository.Entity
	WithID(id int64) T
}

// ids is shared by every store in the process so an id is never handed out
// twice, whatever gets deleted in between.
var ids atomic.Int64

// NextID returns the next process-wide id.
func NextID() int64 {
	return ids.Add(1)
}

// Store is an in-memory repository whose payload is the entity itself.
type Store[T Record[T]] struct {
	name  string
	mu    sync.RWMutex
	items []T
}

// NewStore returns a store seeded with items; each seed gets a fresh id.
func NewStore[T Record[T]](name string, seed ...T) *Store[T] {
	s := &Store[T]{name: name, items: make([]T, 0, len(seed))}
	for _, item := range seed {
		s.items = append(s.items, item.WithID(NextID()))
	}
	return s
}

func (s *Store[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

func (s *Store[T]) Create(_ context.Context, item T) (T, error) {
	item = item.WithID(NextID())

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

func (s *Store[T]) Update(_ context.Context, id int64, item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, apperrors.NotFound(s.name, nil)
	}
	item = item.WithID(id)
	s.items[i] = item
	return item, nil
}

func (s *Store[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return apperrors.NotFound(s.name, nil)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *Store[T]) index(id int64) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.EntityID() == id })
}
