package client

import "time"

// Status is the client lifecycle state.
type Status string

const (
	StatusProspect Status = "Prospek"
	StatusActive   Status = "Aktif"
	StatusInactive Status = "Tidak Aktif"
	StatusLost     Status = "Hilang"
)

// Type distinguishes one-off clients from long-term vendor accounts.
type Type string

const (
	TypeDirect Type = "Langsung"
	TypeVendor Type = "Vendor"
)

// Client is a paying customer of the studio.
type Client struct {
	ID             string    `json:"id" row:",readonly"`
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"omitempty,email"`
	Phone          string    `json:"phone"`
	Instagram      string    `json:"instagram"`
	Since          string    `json:"since"`
	Status         Status    `json:"status"`
	ClientType     Type      `json:"clientType"`
	LastContact    time.Time `json:"lastContact"`
	PortalAccessID string    `json:"portalAccessId"`
	CreatedAt      time.Time `json:"createdAt" row:",readonly"`
}

// EntityID implements store.Entity.
func (c Client) EntityID() string { return c.ID }
