package project

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/domain/catalog"
)

// PaymentStatus tracks how much of the project cost has been settled.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "Unpaid"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

// TeamAssignment records one team member working a project, with the
// agreed fee and any reward on top.
type TeamAssignment struct {
	MemberID string          `json:"memberId"`
	Name     string          `json:"name"`
	Role     string          `json:"role"`
	Fee      decimal.Decimal `json:"fee"`
	Reward   decimal.Decimal `json:"reward"`
}

// Project is the central entity: a booked job for a client, covering
// scheduling, money, team, and the client-facing confirmation state.
type Project struct {
	ID                string           `json:"id" row:",readonly"`
	ProjectName       string           `json:"projectName" validate:"required"`
	ClientName        string           `json:"clientName"`
	ClientID          string           `json:"clientId"`
	ProjectType       string           `json:"projectType"`
	PackageName       string           `json:"packageName"`
	PackageID         string           `json:"packageId"`
	AddOns            []catalog.AddOn  `json:"addOns"`
	Date              string           `json:"date" validate:"required"`
	DeadlineDate      string           `json:"deadlineDate"`
	Location          string           `json:"location"`
	Progress          int              `json:"progress" validate:"min=0,max=100"`
	Status            string           `json:"status"`
	ActiveSubStatuses []string         `json:"activeSubStatuses"`
	TotalCost         decimal.Decimal  `json:"totalCost"`
	AmountPaid        decimal.Decimal  `json:"amountPaid"`
	PaymentStatus     PaymentStatus    `json:"paymentStatus"`
	Team              []TeamAssignment `json:"team"`
	Notes             string           `json:"notes"`
	Accommodation     string           `json:"accommodation"`
	DriveLink         string           `json:"driveLink"`
	ClientDriveLink   string           `json:"clientDriveLink"`
	FinalDriveLink    string           `json:"finalDriveLink"`
	StartTime         string           `json:"startTime"`
	EndTime           string           `json:"endTime"`
	Image             string           `json:"image"`
	PromoCodeID       string           `json:"promoCodeId"`
	DiscountAmount    decimal.Decimal  `json:"discountAmount"`
	ShippingDetails   string           `json:"shippingDetails"`
	DpProofURL        string           `json:"dpProofUrl"`
	PrintingCost      decimal.Decimal  `json:"printingCost"`
	TransportCost     decimal.Decimal  `json:"transportCost"`

	// Client-facing confirmation state per production stage.
	IsEditingConfirmedByClient  bool              `json:"isEditingConfirmedByClient"`
	IsPrintingConfirmedByClient bool              `json:"isPrintingConfirmedByClient"`
	IsDeliveryConfirmedByClient bool              `json:"isDeliveryConfirmedByClient"`
	ConfirmedSubStatuses        []string          `json:"confirmedSubStatuses"`
	ClientSubStatusNotes        map[string]string `json:"clientSubStatusNotes"`
	SubStatusConfirmationSentAt map[string]string `json:"subStatusConfirmationSentAt"`
	CompletedDigitalItems       []string          `json:"completedDigitalItems"`
	InvoiceSignature            string            `json:"invoiceSignature"`

	// Revisions is populated only by Service.WithRevisions; it is not a
	// column of the projects table.
	Revisions []Revision `json:"revisions" row:"-"`

	CreatedAt time.Time `json:"createdAt" row:",readonly"`
}

// EntityID implements store.Entity.
func (p Project) EntityID() string { return p.ID }

// RevisionStatus is the workflow state of a revision request.
type RevisionStatus string

const (
	RevisionPending    RevisionStatus = "Pending"
	RevisionInProgress RevisionStatus = "In Progress"
	RevisionCompleted  RevisionStatus = "Completed"
)

// Revision is a rework request owned by a project and assigned to a
// freelancer. ProjectID is stamped on write; nested reads may omit it.
type Revision struct {
	ID              string         `json:"id" row:",readonly"`
	ProjectID       string         `json:"projectId"`
	Date            string         `json:"date"`
	AdminNotes      string         `json:"adminNotes"`
	Deadline        string         `json:"deadline"`
	FreelancerID    string         `json:"freelancerId"`
	Status          RevisionStatus `json:"status"`
	FreelancerNotes string         `json:"freelancerNotes"`
	DriveLink       string         `json:"driveLink"`
	CompletedDate   string         `json:"completedDate"`
}

// EntityID implements store.Entity.
func (r Revision) EntityID() string { return r.ID }
