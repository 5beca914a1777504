package asset

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const Table = "assets"

// NewStore creates the asset store.
func NewStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Asset] {
	return store.New[Asset](remote, store.Config{Table: Table}, logger)
}
