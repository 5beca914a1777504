package lead

import "time"

// Status is the funnel position of a lead.
type Status string

const (
	StatusNew        Status = "New"
	StatusDiscussion Status = "In Discussion"
	StatusFollowUp   Status = "Follow Up"
	StatusConverted  Status = "Converted"
	StatusRejected   Status = "Rejected"
)

// Lead is a prospective client that hasn't booked yet.
type Lead struct {
	ID             string    `json:"id" row:",readonly"`
	Name           string    `json:"name" validate:"required"`
	ContactChannel string    `json:"contactChannel"`
	Location       string    `json:"location"`
	Status         Status    `json:"status"`
	Date           string    `json:"date"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt" row:",readonly"`
}

// EntityID implements store.Entity.
func (l Lead) EntityID() string { return l.ID }
