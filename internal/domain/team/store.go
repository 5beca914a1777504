package team

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const (
	Table     = "team_members"
	NoteTable = "performance_notes"
)

// NewStore creates the team member store.
func NewStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Member] {
	return store.New[Member](remote, store.Config{Table: Table}, logger)
}
