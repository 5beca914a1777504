// Package sqlite implements rowstore.Store over an embedded SQLite
// database. It plays the hosted backend's role locally: it assigns row
// identifiers and server timestamps, and echoes canonical rows on
// writes. Timestamps and JSON documents are stored as TEXT.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// New opens a SQLite database at the given path (":memory:" works).
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the full schema. Safe to call on every start.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    instagram TEXT,
    since TEXT,
    status TEXT,
    client_type TEXT,
    last_contact TEXT,
    portal_access_id TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    project_name TEXT NOT NULL,
    client_name TEXT,
    client_id TEXT,
    project_type TEXT,
    package_name TEXT,
    package_id TEXT,
    add_ons TEXT,
    date TEXT,
    deadline_date TEXT,
    location TEXT,
    progress INTEGER,
    status TEXT,
    active_sub_statuses TEXT,
    total_cost TEXT,
    amount_paid TEXT,
    payment_status TEXT,
    team TEXT,
    notes TEXT,
    accommodation TEXT,
    drive_link TEXT,
    client_drive_link TEXT,
    final_drive_link TEXT,
    start_time TEXT,
    end_time TEXT,
    image TEXT,
    promo_code_id TEXT,
    discount_amount TEXT,
    shipping_details TEXT,
    dp_proof_url TEXT,
    printing_cost TEXT,
    transport_cost TEXT,
    is_editing_confirmed_by_client INTEGER,
    is_printing_confirmed_by_client INTEGER,
    is_delivery_confirmed_by_client INTEGER,
    confirmed_sub_statuses TEXT,
    client_sub_status_notes TEXT,
    sub_status_confirmation_sent_at TEXT,
    completed_digital_items TEXT,
    invoice_signature TEXT,
    created_at TEXT,
    updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_project_client ON projects(client_id);
CREATE INDEX IF NOT EXISTS idx_project_date ON projects(date);

CREATE TABLE IF NOT EXISTS revisions (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    date TEXT,
    admin_notes TEXT,
    deadline TEXT,
    freelancer_id TEXT,
    status TEXT,
    freelancer_notes TEXT,
    drive_link TEXT,
    completed_date TEXT,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_revision_project ON revisions(project_id);

CREATE TABLE IF NOT EXISTS team_members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT,
    email TEXT,
    phone TEXT,
    standard_fee TEXT,
    no_rek TEXT,
    reward_balance TEXT,
    rating REAL,
    portal_access_id TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS performance_notes (
    id TEXT PRIMARY KEY,
    team_member_id TEXT NOT NULL,
    date TEXT,
    note TEXT,
    type TEXT,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (team_member_id) REFERENCES team_members(id)
);
CREATE INDEX IF NOT EXISTS idx_note_member ON performance_notes(team_member_id);

CREATE TABLE IF NOT EXISTS packages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT,
    physical_items TEXT,
    digital_items TEXT,
    processing_time TEXT,
    photographers TEXT,
    videographers TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS add_ons (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS profile (
    id TEXT PRIMARY KEY,
    full_name TEXT,
    email TEXT,
    phone TEXT,
    company_name TEXT,
    website TEXT,
    address TEXT,
    bank_account TEXT,
    authorized_signer TEXT,
    id_number TEXT,
    bio TEXT,
    income_categories TEXT,
    expense_categories TEXT,
    project_types TEXT,
    event_types TEXT,
    asset_categories TEXT,
    sop_categories TEXT,
    project_status_config TEXT,
    notification_settings TEXT,
    security_settings TEXT,
    briefing_template TEXT,
    terms_and_conditions TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    date TEXT,
    description TEXT,
    amount TEXT,
    type TEXT,
    project_id TEXT,
    category TEXT,
    method TEXT,
    pocket_id TEXT,
    card_id TEXT,
    printing_item_id TEXT,
    vendor_signature TEXT,
    created_at TEXT,
    updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_transaction_project ON transactions(project_id);

CREATE TABLE IF NOT EXISTS promo_codes (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL,
    discount_type TEXT,
    discount_value TEXT,
    is_active INTEGER,
    usage_count INTEGER,
    max_usage INTEGER,
    expiry_date TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS assets (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT,
    purchase_date TEXT,
    purchase_price TEXT,
    serial_number TEXT,
    status TEXT,
    notes TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS leads (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    contact_channel TEXT,
    location TEXT,
    status TEXT,
    date TEXT,
    notes TEXT,
    created_at TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    contract_number TEXT NOT NULL,
    client_id TEXT,
    project_id TEXT,
    signing_date TEXT,
    signing_location TEXT,
    client_name1 TEXT,
    client_address1 TEXT,
    client_phone1 TEXT,
    client_name2 TEXT,
    client_address2 TEXT,
    client_phone2 TEXT,
    shooting_duration TEXT,
    guaranteed_photos TEXT,
    album_details TEXT,
    digital_files_format TEXT,
    other_items TEXT,
    personnel_count TEXT,
    delivery_timeframe TEXT,
    dp_date TEXT,
    final_payment_date TEXT,
    cancellation_policy TEXT,
    jurisdiction TEXT,
    vendor_signature TEXT,
    client_signature TEXT,
    created_at TEXT,
    updated_at TEXT
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
