package sqlite

// tableSpec records which columns need decoding help when a row is read
// back: JSON documents stored as TEXT, and booleans stored as INTEGER.
type tableSpec struct {
	jsonCols map[string]bool
	boolCols map[string]bool
}

var tables = map[string]tableSpec{
	"clients": {},
	"projects": {
		jsonCols: set("add_ons", "active_sub_statuses", "team",
			"confirmed_sub_statuses", "client_sub_status_notes",
			"sub_status_confirmation_sent_at", "completed_digital_items"),
		boolCols: set("is_editing_confirmed_by_client",
			"is_printing_confirmed_by_client",
			"is_delivery_confirmed_by_client"),
	},
	"revisions":         {},
	"team_members":      {},
	"performance_notes": {},
	"packages": {
		jsonCols: set("physical_items", "digital_items"),
	},
	"add_ons": {},
	"profile": {
		jsonCols: set("income_categories", "expense_categories",
			"project_types", "event_types", "asset_categories",
			"sop_categories", "project_status_config",
			"notification_settings", "security_settings"),
	},
	"transactions": {},
	"promo_codes": {
		boolCols: set("is_active"),
	},
	"assets":    {},
	"leads":     {},
	"contracts": {},
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
