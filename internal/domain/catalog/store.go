package catalog

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const (
	PackageTable = "packages"
	AddOnTable   = "add_ons"
)

// NewPackageStore creates the package store.
func NewPackageStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Package] {
	return store.New[Package](remote, store.Config{Table: PackageTable}, logger)
}

// NewAddOnStore creates the add-on store.
func NewAddOnStore(remote rowstore.Store, logger *slog.Logger) *store.Store[AddOn] {
	return store.New[AddOn](remote, store.Config{Table: AddOnTable}, logger)
}
