package project

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const (
	Table         = "projects"
	RevisionTable = "revisions"
)

// NewStore creates the project store, ordered by shoot date descending
// with new projects prepended.
func NewStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Project] {
	return store.New[Project](remote, store.Config{
		Table:      Table,
		OrderBy:    "date",
		Descending: true,
		Placement:  store.Prepend,
	}, logger)
}
