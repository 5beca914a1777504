// Package store provides the generic in-memory entity store: one
// instance per entity type, holding the live collection plus a loading
// flag, with each operation a single round trip to the row store.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/rowstore"
)

// Entity is anything with a unique identifier.
type Entity interface {
	EntityID() string
}

// Placement controls where a freshly created entity lands in the local
// collection.
type Placement int

const (
	// Append places new entities at the end.
	Append Placement = iota
	// Prepend places new entities first, for newest-first collections.
	Prepend
)

// Config describes one entity table.
type Config struct {
	Table      string
	OrderBy    string
	Descending bool
	Placement  Placement
}

var validate = validator.New()

// Store holds the live collection for one entity type. The collection
// is mutated only by the store's own operations, and only after the
// corresponding remote call has succeeded.
type Store[T Entity] struct {
	remote rowstore.Store
	cfg    Config
	logger *slog.Logger

	mu      sync.RWMutex
	items   []T
	loading bool
	// fetch tickets guard against a slow fetch overwriting a newer one
	fetchSeq   uint64
	appliedSeq uint64
}

// New creates a store for one entity table.
func New[T Entity](remote rowstore.Store, cfg Config, logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store[T]{remote: remote, cfg: cfg, logger: logger}
}

// Items returns a copy of the current collection.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// FetchAll replaces the collection with the backend's current rows.
// Read failures are logged and swallowed so a transient error doesn't
// take down a consuming view; the previous collection is kept. The
// loading flag is cleared on every settle path.
func (s *Store[T]) FetchAll(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	rows, err := s.remote.Select(ctx, s.cfg.Table, rowstore.SelectOptions{
		OrderBy:    s.cfg.OrderBy,
		Descending: s.cfg.Descending,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.logger.Error("fetch failed", "table", s.cfg.Table, "error", err)
		return
	}
	if seq < s.appliedSeq {
		// a later fetch already landed; this result is stale
		return
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := mapper.FromRow(row, &item); err != nil {
			s.logger.Error("mapping row failed", "table", s.cfg.Table, "error", err)
			return
		}
		items = append(items, item)
	}
	s.items = items
	s.appliedSeq = seq
}

// Refetch re-runs FetchAll. Callers hold the items from the last
// successful fetch in the meantime.
func (s *Store[T]) Refetch(ctx context.Context) {
	s.FetchAll(ctx)
}

// Create validates and inserts the entity, then adds the server's
// canonical echo (with assigned id and timestamps) to the collection.
// On failure the collection is untouched and the error propagates.
func (s *Store[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T

	if err := validate.Struct(item); err != nil {
		return zero, fmt.Errorf("validating %s: %w", s.cfg.Table, err)
	}

	row, err := mapper.ToRow(item, time.Now())
	if err != nil {
		return zero, err
	}

	created, err := s.remote.Insert(ctx, s.cfg.Table, row)
	if err != nil {
		s.logger.Error("create failed", "table", s.cfg.Table, "error", err)
		return zero, err
	}

	var out T
	if err := mapper.FromRow(created, &out); err != nil {
		return zero, err
	}

	s.mu.Lock()
	if s.cfg.Placement == Prepend {
		s.items = append([]T{out}, s.items...)
	} else {
		s.items = append(s.items, out)
	}
	s.mu.Unlock()

	return out, nil
}

// Update writes only the fields present in the patch and replaces the
// matching element with the server's echo. A missing id surfaces as
// rowstore.ErrNotFound.
func (s *Store[T]) Update(ctx context.Context, id string, patch *mapper.Patch) (T, error) {
	var zero T

	updated, err := s.remote.Update(ctx, s.cfg.Table, id, patch.Row(time.Now()))
	if err != nil {
		s.logger.Error("update failed", "table", s.cfg.Table, "id", id, "error", err)
		return zero, err
	}

	var out T
	if err := mapper.FromRow(updated, &out); err != nil {
		return zero, err
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items[i] = out
			break
		}
	}
	s.mu.Unlock()

	return out, nil
}

// Delete removes the row remotely, then locally. On failure the
// collection is untouched and the error propagates.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, s.cfg.Table, id); err != nil {
		s.logger.Error("delete failed", "table", s.cfg.Table, "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.EntityID() != id {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.mu.Unlock()

	return nil
}
