// Package finance covers money movement records: transactions and the
// promo codes that discount projects.
package finance

import "github.com/shopspring/decimal"

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// Transaction is a single money movement, optionally tied to a project.
type Transaction struct {
	ID              string          `json:"id" row:",readonly"`
	Date            string          `json:"date" validate:"required"`
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type" validate:"required,oneof=Income Expense"`
	ProjectID       string          `json:"projectId"`
	Category        string          `json:"category"`
	Method          string          `json:"method"`
	PocketID        string          `json:"pocketId"`
	CardID          string          `json:"cardId"`
	PrintingItemID  string          `json:"printingItemId"`
	VendorSignature string          `json:"vendorSignature"`
}

// EntityID implements store.Entity.
func (t Transaction) EntityID() string { return t.ID }

// PromoCode discounts a project either by percentage or flat amount.
type PromoCode struct {
	ID            string          `json:"id" row:",readonly"`
	Code          string          `json:"code" validate:"required"`
	DiscountType  string          `json:"discountType" validate:"oneof=percentage amount"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	IsActive      bool            `json:"isActive"`
	UsageCount    int             `json:"usageCount"`
	MaxUsage      *int            `json:"maxUsage"`
	ExpiryDate    string          `json:"expiryDate"`
}

// EntityID implements store.Entity.
func (p PromoCode) EntityID() string { return p.ID }
