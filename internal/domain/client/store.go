package client

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const Table = "clients"

// NewStore creates the client store, newest first.
func NewStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Client] {
	return store.New[Client](remote, store.Config{
		Table:      Table,
		OrderBy:    "created_at",
		Descending: true,
		Placement:  store.Prepend,
	}, logger)
}
