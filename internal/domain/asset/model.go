package asset

import "github.com/shopspring/decimal"

// Status is the usability state of a piece of equipment.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusInUse       Status = "In Use"
	StatusMaintenance Status = "Maintenance"
)

// Asset is a piece of studio equipment.
type Asset struct {
	ID            string          `json:"id" row:",readonly"`
	Name          string          `json:"name" validate:"required"`
	Category      string          `json:"category"`
	PurchaseDate  string          `json:"purchaseDate"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SerialNumber  string          `json:"serialNumber"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes"`
}

// EntityID implements store.Entity.
func (a Asset) EntityID() string { return a.ID }
