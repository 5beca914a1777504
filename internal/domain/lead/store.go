package lead

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const Table = "leads"

// NewStore creates the lead store, newest first.
func NewStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Lead] {
	return store.New[Lead](remote, store.Config{
		Table:      Table,
		OrderBy:    "created_at",
		Descending: true,
		Placement:  store.Prepend,
	}, logger)
}
