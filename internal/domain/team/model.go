package team

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is a freelancer the studio books onto projects.
type Member struct {
	ID             string          `json:"id" row:",readonly"`
	Name           string          `json:"name" validate:"required"`
	Role           string          `json:"role"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone"`
	StandardFee    decimal.Decimal `json:"standardFee"`
	BankAccount    string          `json:"noRek" row:"no_rek"`
	RewardBalance  decimal.Decimal `json:"rewardBalance"`
	Rating         float64         `json:"rating" validate:"min=0,max=5"`
	PortalAccessID string          `json:"portalAccessId"`

	// PerformanceNotes is populated only by Service.WithNotes; notes
	// live in their own table.
	PerformanceNotes []PerformanceNote `json:"performanceNotes" row:"-"`

	CreatedAt time.Time `json:"createdAt" row:",readonly"`
}

// EntityID implements store.Entity.
func (m Member) EntityID() string { return m.ID }

// NoteType classifies a performance note.
type NoteType string

const (
	NotePraise  NoteType = "Praise"
	NoteConcern NoteType = "Concern"
	NoteLate    NoteType = "Late"
	NoteGeneral NoteType = "General"
)

// PerformanceNote is a dated observation about a member's work.
// TeamMemberID is stamped on write; nested reads may omit it.
type PerformanceNote struct {
	ID           string   `json:"id" row:",readonly"`
	TeamMemberID string   `json:"teamMemberId"`
	Date         string   `json:"date"`
	Note         string   `json:"note" validate:"required"`
	Type         NoteType `json:"type"`
}

// EntityID implements store.Entity.
func (n PerformanceNote) EntityID() string { return n.ID }
