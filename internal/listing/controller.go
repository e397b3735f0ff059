// Package listing holds the generic list controller every entity screen is
// built on: a collection, a free-text filter, the open modal, and the
// create/update/delete calls that keep the collection in line with its
// repository.
package listing

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-console/internal/repository"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

var (
	// ErrInFlight is returned when the same mutation is already running.
	ErrInFlight = errors.New("operation already in progress")
	// ErrNotConfirmed is returned by Delete without an explicit confirmation.
	ErrNotConfirmed = errors.New("delete requires confirmation")
	// ErrNotListed marks a mutation refused locally because the id is no
	// longer in the collection. It always comes with a NotFound error.
	ErrNotListed = errors.New("not in the list")
)

// Stat is one summary card.
type Stat struct {
	Title string
	Value string
}

type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalCreating
	ModalEditing
)

// Modal is the open form, if any. Target is only meaningful when editing.
type Modal[T any] struct {
	Kind   ModalKind
	Target T
}

type Config[T repository.Entity, P any] struct {
	Name       string
	Repo       repository.Repository[T, P]
	Searchable func(T) []string
	Stats      func([]T) []Stat
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot[T any] struct {
	Items    []T
	Loading  bool
	Err      error
	Filter   string
	Modal    Modal[T]
	Mounted  bool
	Creating bool
}

type Controller[T repository.Entity, P any] struct {
	name       string
	repo       repository.Repository[T, P]
	searchable func(T) []string
	stats      func([]T) []Stat

	mu       sync.Mutex
	items    []T
	loading  bool
	lastErr  error
	filter   string
	modal    Modal[T]
	inflight map[int64]struct{}
	creating bool
	mounted  bool
	closed   bool
}

func New[T repository.Entity, P any](cfg Config[T, P]) *Controller[T, P] {
	searchable := cfg.Searchable
	if searchable == nil {
		searchable = func(T) []string { return nil }
	}
	stats := cfg.Stats
	if stats == nil {
		stats = func([]T) []Stat { return nil }
	}
	return &Controller[T, P]{
		name:       cfg.Name,
		repo:       cfg.Repo,
		searchable: searchable,
		stats:      stats,
		inflight:   make(map[int64]struct{}),
	}
}

func (c *Controller[T, P]) Name() string {
	return c.name
}

func (c *Controller[T, P]) logger(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &log.Logger
	}
	sub := l.With().Str("entity", c.name).Logger()
	return &sub
}

// Mount fetches the collection the first time the screen is shown. Later
// calls are no-ops; use Refresh to retry.
func (c *Controller[T, P]) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted || c.closed {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh replaces the collection with the repository's. On failure the
// previous items stay visible and the error is kept for the page.
func (c *Controller[T, P]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.loading = true
	c.mu.Unlock()

	items, err := c.repo.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return err
	}
	c.loading = false
	if err != nil {
		c.lastErr = err
		c.logger(ctx).Warn().Err(err).Str("kind", apperrors.KindOf(err).String()).Msg("refresh failed")
		return err
	}
	c.items = items
	c.lastErr = nil
	return nil
}

// Create stores payload and appends the entity the repository returns. A
// failure leaves the modal open so the entered data is not lost.
func (c *Controller[T, P]) Create(ctx context.Context, payload P) (T, error) {
	var zero T

	c.mu.Lock()
	if c.creating {
		c.mu.Unlock()
		return zero, ErrInFlight
	}
	c.creating = true
	c.mu.Unlock()

	created, err := c.repo.Create(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.creating = false
	if c.closed {
		return created, err
	}
	if err != nil {
		c.logger(ctx).Warn().Err(err).Str("kind", apperrors.KindOf(err).String()).Msg("create failed")
		return zero, err
	}
	c.items = upsert(c.items, created)
	c.modal = Modal[T]{}
	return created, nil
}

// Update replaces the entity with id by the repository's answer.
func (c *Controller[T, P]) Update(ctx context.Context, id int64, payload P) (T, error) {
	var zero T
	if err := c.acquire(id); err != nil {
		return zero, err
	}

	updated, err := c.repo.Update(ctx, id, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
	if c.closed {
		return updated, err
	}
	if err != nil {
		c.logger(ctx).Warn().Err(err).Int64("id", id).Str("kind", apperrors.KindOf(err).String()).Msg("update failed")
		return zero, err
	}
	c.items = replace(c.items, updated)
	c.modal = Modal[T]{}
	return updated, nil
}

// Delete removes the entity with id. It sends nothing unless confirmed, and
// at most one request per id is ever outstanding.
func (c *Controller[T, P]) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.acquire(id); err != nil {
		return err
	}

	err := c.repo.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
	if c.closed {
		return err
	}
	if err != nil {
		c.logger(ctx).Warn().Err(err).Int64("id", id).Str("kind", apperrors.KindOf(err).String()).Msg("delete failed")
		return err
	}
	c.items = remove(c.items, id)
	if c.modal.Kind == ModalEditing && c.modal.Target.EntityID() == id {
		c.modal = Modal[T]{}
	}
	return nil
}

// acquire marks id busy. An id that is no longer listed is reported as not
// found without asking the repository.
func (c *Controller[T, P]) acquire(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[id]; busy {
		return ErrInFlight
	}
	if indexOf(c.items, id) < 0 {
		return fmt.Errorf("%w: %w", ErrNotListed, apperrors.NotFound(c.name, nil))
	}
	c.inflight[id] = struct{}{}
	return nil
}

// Busy reports whether a mutation for id is running.
func (c *Controller[T, P]) Busy(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[id]
	return busy
}

func (c *Controller[T, P]) Get(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.items, id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Controller[T, P]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Controller[T, P]) SetFilter(text string) {
	c.mu.Lock()
	c.filter = text
	c.mu.Unlock()
}

func (c *Controller[T, P]) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// FilteredView yields the items matching the current filter, in order.
func (c *Controller[T, P]) FilteredView() iter.Seq[T] {
	c.mu.Lock()
	items, text := slices.Clone(c.items), c.filter
	c.mu.Unlock()
	return Filter(items, c.searchable, text)
}

// DerivedStats computes the summary cards from the current items.
func (c *Controller[T, P]) DerivedStats() []Stat {
	return c.stats(c.Items())
}

func (c *Controller[T, P]) OpenCreate() {
	c.mu.Lock()
	c.modal = Modal[T]{Kind: ModalCreating}
	c.mu.Unlock()
}

func (c *Controller[T, P]) OpenEdit(id int64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexOf(c.items, id)
	if i < 0 {
		var zero T
		return zero, apperrors.NotFound(c.name, nil)
	}
	c.modal = Modal[T]{Kind: ModalEditing, Target: c.items[i]}
	return c.items[i], nil
}

func (c *Controller[T, P]) CloseModal() {
	c.mu.Lock()
	c.modal = Modal[T]{}
	c.mu.Unlock()
}

func (c *Controller[T, P]) Modal() Modal[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

func (c *Controller[T, P]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		Items:    slices.Clone(c.items),
		Loading:  c.loading,
		Err:      c.lastErr,
		Filter:   c.filter,
		Modal:    c.modal,
		Mounted:  c.mounted,
		Creating: c.creating,
	}
}

// Close detaches the controller. Requests still running complete without
// touching its state.
func (c *Controller[T, P]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Filter yields the items whose searchable fields contain text, ignoring
// case. An empty text yields everything. The sequence can be ranged over
// any number of times.
func Filter[T any](items []T, fields func(T) []string, text string) iter.Seq[T] {
	needle := strings.ToLower(text)
	return func(yield func(T) bool) {
		for _, item := range items {
			if !matches(fields(item), needle) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func matches(fields []string, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
