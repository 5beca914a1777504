// Package catalog holds the studio's sellable offerings: packages with
// their deliverables, and standalone add-ons.
package catalog

import "github.com/shopspring/decimal"

// PhysicalItem is a tangible deliverable bundled in a package.
type PhysicalItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Package is a priced service bundle.
type Package struct {
	ID             string          `json:"id" row:",readonly"`
	Name           string          `json:"name" validate:"required"`
	Price          decimal.Decimal `json:"price"`
	PhysicalItems  []PhysicalItem  `json:"physicalItems"`
	DigitalItems   []string        `json:"digitalItems"`
	ProcessingTime string          `json:"processingTime"`
	Photographers  string          `json:"photographers"`
	Videographers  string          `json:"videographers"`
}

// EntityID implements store.Entity.
func (p Package) EntityID() string { return p.ID }

// AddOn is an extra sold alongside a package.
type AddOn struct {
	ID    string          `json:"id" row:",readonly"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// EntityID implements store.Entity.
func (a AddOn) EntityID() string { return a.ID }
