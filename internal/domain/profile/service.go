package profile

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/rowstore"
)

// Table is the persisted singleton table.
const Table = "profile"

// Service holds the studio profile in memory. It mirrors the entity
// stores' contract — fetch swallows errors, writes propagate — but
// addresses a single logical row instead of a collection.
type Service struct {
	remote rowstore.Store
	logger *slog.Logger

	mu      sync.RWMutex
	profile *Profile
	loading bool
}

// NewService creates the profile service.
func NewService(remote rowstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{remote: remote, logger: logger}
}

// Current returns the last fetched profile, or nil when none exists.
func (s *Service) Current() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	copied := *s.profile
	return &copied
}

// Loading reports whether a fetch is in flight.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Fetch loads the singleton row. A missing row is not an error: the
// profile simply stays nil. Failures are logged and swallowed.
func (s *Service) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	rows, err := s.remote.Select(ctx, Table, rowstore.SelectOptions{Limit: 1})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.logger.Error("fetch failed", "table", Table, "error", err)
		return
	}
	if len(rows) == 0 {
		s.profile = nil
		return
	}

	var p Profile
	if err := mapper.FromRow(rows[0], &p); err != nil {
		s.logger.Error("mapping profile failed", "error", err)
		return
	}
	s.profile = &p
}

// Update upserts the fields present in the patch into the singleton
// row and replaces the in-memory profile with the server's echo.
func (s *Service) Update(ctx context.Context, patch *mapper.Patch) (*Profile, error) {
	row, err := s.remote.Upsert(ctx, Table, patch.Row(time.Now()))
	if err != nil {
		s.logger.Error("update failed", "table", Table, "error", err)
		return nil, err
	}

	var p Profile
	if err := mapper.FromRow(row, &p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()

	copied := p
	return &copied, nil
}
