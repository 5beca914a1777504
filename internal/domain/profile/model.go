// Package profile manages the studio's singleton configuration row:
// category lists, templates, and defaulted settings objects.
package profile

// NotificationSettings controls which events notify the studio owner.
// All switches default to on when the stored value is null.
type NotificationSettings struct {
	NewProject          bool `json:"newProject"`
	PaymentConfirmation bool `json:"paymentConfirmation"`
	DeadlineReminder    bool `json:"deadlineReminder"`
}

// SecuritySettings holds account security options.
type SecuritySettings struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
}

// SubStatusConfig is one sub-status within a project status.
type SubStatusConfig struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// StatusConfig is one configurable project status.
type StatusConfig struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Color       string            `json:"color"`
	SubStatuses []SubStatusConfig `json:"subStatuses"`
	Note        string            `json:"note"`
}

// Profile is the organization-wide configuration. At most one logical
// row exists; updates are upserts.
type Profile struct {
	FullName             string                `json:"fullName"`
	Email                string                `json:"email" validate:"omitempty,email"`
	Phone                string                `json:"phone"`
	CompanyName          string                `json:"companyName"`
	Website              string                `json:"website"`
	Address              string                `json:"address"`
	BankAccount          string                `json:"bankAccount"`
	AuthorizedSigner     string                `json:"authorizedSigner"`
	IDNumber             string                `json:"idNumber"`
	Bio                  string                `json:"bio"`
	IncomeCategories     []string              `json:"incomeCategories"`
	ExpenseCategories    []string              `json:"expenseCategories"`
	ProjectTypes         []string              `json:"projectTypes"`
	EventTypes           []string              `json:"eventTypes"`
	AssetCategories      []string              `json:"assetCategories"`
	SOPCategories        []string              `json:"sopCategories" row:"sop_categories"`
	ProjectStatusConfig  []StatusConfig        `json:"projectStatusConfig"`
	NotificationSettings *NotificationSettings `json:"notificationSettings"`
	SecuritySettings     *SecuritySettings     `json:"securitySettings"`
	BriefingTemplate     string                `json:"briefingTemplate"`
	TermsAndConditions   string                `json:"termsAndConditions"`
}

// ApplyDefaults fills the settings objects when storage holds null.
// An explicitly stored all-false object is preserved as-is.
func (p *Profile) ApplyDefaults() {
	if p.NotificationSettings == nil {
		p.NotificationSettings = &NotificationSettings{
			NewProject:          true,
			PaymentConfirmation: true,
			DeadlineReminder:    true,
		}
	}
	if p.SecuritySettings == nil {
		p.SecuritySettings = &SecuritySettings{}
	}
}
