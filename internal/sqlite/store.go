package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/rowstore"
)

// Store implements rowstore.Store over the embedded database.
type Store struct {
	db *DB
}

// NewStore creates a row store backed by db.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func specFor(table string) (tableSpec, error) {
	spec, ok := tables[table]
	if !ok {
		return tableSpec{}, fmt.Errorf("unknown table %q", table)
	}
	return spec, nil
}

// Select returns rows matching the options, with any requested child
// embeds attached under the child table's name.
func (s *Store) Select(ctx context.Context, table string, opts rowstore.SelectOptions) ([]rowstore.Row, error) {
	spec, err := specFor(table)
	if err != nil {
		return nil, rowstore.NewOpError(table, "select", err)
	}

	query := "SELECT * FROM " + table
	var args []any

	if len(opts.Filter) > 0 {
		cols := make([]string, 0, len(opts.Filter))
		for col := range opts.Filter {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		conds := make([]string, 0, len(cols))
		for _, col := range cols {
			if !identRe.MatchString(col) {
				return nil, rowstore.NewOpError(table, "select", fmt.Errorf("bad filter column %q", col))
			}
			conds = append(conds, col+" = ?")
			args = append(args, opts.Filter[col])
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	if opts.OrderBy != "" {
		if !identRe.MatchString(opts.OrderBy) {
			return nil, rowstore.NewOpError(table, "select", fmt.Errorf("bad order column %q", opts.OrderBy))
		}
		query += " ORDER BY " + opts.OrderBy
		if opts.Descending {
			query += " DESC"
		}
	}
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, rowstore.NewOpError(table, "select", err)
	}
	out, err := scanRows(rows, spec)
	if err != nil {
		return nil, rowstore.NewOpError(table, "select", err)
	}

	for _, embed := range opts.Embeds {
		if err := s.attachChildren(ctx, table, out, embed); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Insert writes the values as a new row, assigning the identifier and
// server timestamps, and echoes the stored row.
func (s *Store) Insert(ctx context.Context, table string, values rowstore.Row) (rowstore.Row, error) {
	if _, err := specFor(table); err != nil {
		return nil, rowstore.NewOpError(table, "insert", err)
	}

	row := make(rowstore.Row, len(values)+3)
	for k, v := range values {
		row[k] = v
	}
	id := uuid.NewString()
	row["id"] = id
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	if _, ok := row["updated_at"]; !ok {
		row["updated_at"] = now
	}

	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		if !identRe.MatchString(col) {
			return nil, rowstore.NewOpError(table, "insert", fmt.Errorf("bad column %q", col))
		}
		encoded, err := encodeValue(row[col])
		if err != nil {
			return nil, rowstore.NewOpError(table, "insert", err)
		}
		placeholders = append(placeholders, "?")
		args = append(args, encoded)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, rowstore.NewOpError(table, "insert", err)
	}

	return s.selectByID(ctx, table, "insert", id)
}

// Update applies the patch to the identified row and echoes the stored
// row. A missing id yields rowstore.ErrNotFound.
func (s *Store) Update(ctx context.Context, table, id string, patch rowstore.Row) (rowstore.Row, error) {
	return s.update(ctx, table, "update", id, patch)
}

func (s *Store) update(ctx context.Context, table, op, id string, patch rowstore.Row) (rowstore.Row, error) {
	if _, err := specFor(table); err != nil {
		return nil, rowstore.NewOpError(table, op, err)
	}

	cols := make([]string, 0, len(patch))
	for col := range patch {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		if !identRe.MatchString(col) {
			return nil, rowstore.NewOpError(table, op, fmt.Errorf("bad column %q", col))
		}
		encoded, err := encodeValue(patch[col])
		if err != nil {
			return nil, rowstore.NewOpError(table, op, err)
		}
		sets = append(sets, col+" = ?")
		args = append(args, encoded)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, rowstore.NewOpError(table, op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, rowstore.NewOpError(table, op, err)
	}
	if affected == 0 {
		return nil, rowstore.NewOpError(table, op, rowstore.ErrNotFound)
	}

	return s.selectByID(ctx, table, op, id)
}

// Upsert writes into the table's single logical row, inserting when the
// table is empty.
func (s *Store) Upsert(ctx context.Context, table string, values rowstore.Row) (rowstore.Row, error) {
	if _, err := specFor(table); err != nil {
		return nil, rowstore.NewOpError(table, "upsert", err)
	}

	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM "+table+" LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return s.Insert(ctx, table, values)
	}
	if err != nil {
		return nil, rowstore.NewOpError(table, "upsert", err)
	}
	return s.update(ctx, table, "upsert", id, values)
}

// Delete removes the identified row. Deleting an absent row is a no-op,
// matching the hosted backend's behavior.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if _, err := specFor(table); err != nil {
		return rowstore.NewOpError(table, "delete", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return rowstore.NewOpError(table, "delete", err)
	}
	return nil
}

func (s *Store) selectByID(ctx context.Context, table, op, id string) (rowstore.Row, error) {
	rows, err := s.Select(ctx, table, rowstore.SelectOptions{Filter: map[string]any{"id": id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, rowstore.NewOpError(table, op, rowstore.ErrNotFound)
	}
	return rows[0], nil
}

// attachChildren satisfies an embed with one grouped query over the
// child table, keeping the whole join a single backend call.
func (s *Store) attachChildren(ctx context.Context, table string, parents []rowstore.Row, embed rowstore.Embed) error {
	childSpec, err := specFor(embed.Table)
	if err != nil {
		return rowstore.NewOpError(table, "select", err)
	}
	if !identRe.MatchString(embed.ForeignKey) {
		return rowstore.NewOpError(table, "select", fmt.Errorf("bad foreign key %q", embed.ForeignKey))
	}
	if len(parents) == 0 {
		return nil
	}

	ids := make([]any, 0, len(parents))
	placeholders := make([]string, 0, len(parents))
	for _, parent := range parents {
		ids = append(ids, parent["id"])
		placeholders = append(placeholders, "?")
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s IN (%s)",
		embed.Table, embed.ForeignKey, strings.Join(placeholders, ", "))
	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return rowstore.NewOpError(table, "select", err)
	}
	children, err := scanRows(rows, childSpec)
	if err != nil {
		return rowstore.NewOpError(table, "select", err)
	}

	grouped := make(map[string][]rowstore.Row)
	for _, child := range children {
		key, _ := child[embed.ForeignKey].(string)
		grouped[key] = append(grouped[key], child)
	}
	for _, parent := range parents {
		key, _ := parent["id"].(string)
		parent[embed.Table] = grouped[key]
	}
	return nil
}

func scanRows(rows *sql.Rows, spec tableSpec) ([]rowstore.Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []rowstore.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(rowstore.Row, len(cols))
		for i, col := range cols {
			row[col] = decodeValue(spec, col, vals[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func decodeValue(spec tableSpec, col string, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil
	}
	if spec.jsonCols[col] {
		if s, ok := v.(string); ok && s != "" {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				return decoded
			}
		}
		return v
	}
	if spec.boolCols[col] {
		switch n := v.(type) {
		case int64:
			return n != 0
		case bool:
			return n
		}
	}
	return v
}

// encodeValue reduces a row value to something the driver can bind:
// scalars pass through, documents become JSON text.
func encodeValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}
	return string(data), nil
}
