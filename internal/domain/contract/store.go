package contract

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const Table = "contracts"

// NewStore creates the contract store.
func NewStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Contract] {
	return store.New[Contract](remote, store.Config{Table: Table}, logger)
}
