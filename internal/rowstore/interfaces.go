package rowstore

import "context"

// Row is a single table row as exchanged with the backend, keyed by
// snake_case column name. Values for JSON-typed columns are decoded
// Go values (maps, slices), not raw text.
type Row map[string]any

// Embed requests child rows for a parent table. The children are nested
// under the child table's name in each parent Row as a []Row value.
type Embed struct {
	Table      string
	ForeignKey string
}

// SelectOptions narrows and shapes a Select call.
type SelectOptions struct {
	// Filter is an equality filter over column values. All entries must
	// match.
	Filter map[string]any
	// OrderBy names the column to sort by; empty means backend order.
	OrderBy    string
	Descending bool
	// Limit caps the number of rows returned; zero means no limit.
	Limit int
	// Embeds lists child tables to fetch alongside the parents in the
	// same call.
	Embeds []Embed
}

// Store is the row-based query interface the hosted backend provides.
// Insert and Update echo the canonical row, including server-assigned
// fields.
type Store interface {
	Select(ctx context.Context, table string, opts SelectOptions) ([]Row, error)
	Insert(ctx context.Context, table string, values Row) (Row, error)
	Update(ctx context.Context, table, id string, patch Row) (Row, error)
	// Upsert writes values into the table's single logical row, creating
	// it if absent. Used for singleton tables such as profile.
	Upsert(ctx context.Context, table string, values Row) (Row, error)
	Delete(ctx context.Context, table, id string) error
}
