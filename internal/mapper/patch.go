package mapper

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/atelierhq/atelier/internal/rowstore"
)

// Patch is a field-presence-sensitive partial update. Only fields that
// were explicitly Set are transmitted, so legitimate falsy values (0,
// false, "") go out while untouched fields keep their server-side
// value. Fields can also be Set to nil to null a column.
type Patch struct {
	values rowstore.Row
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{values: rowstore.Row{}}
}

// Set records a field to write. name is the domain (camelCase) field
// name; it is translated to the persisted column name.
func (p *Patch) Set(name string, value any) *Patch {
	p.values[Column(name)] = jsonValue(value)
	return p
}

// Len reports how many fields have been set.
func (p *Patch) Len() int {
	return len(p.values)
}

// Columns returns the set columns in sorted order.
func (p *Patch) Columns() []string {
	cols := make([]string, 0, len(p.values))
	for c := range p.values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Row materializes the outgoing row patch, stamping the modification
// timestamp. The patch itself is not consumed.
func (p *Patch) Row(now time.Time) rowstore.Row {
	out := make(rowstore.Row, len(p.values)+1)
	for k, v := range p.values {
		out[k] = v
	}
	out["updated_at"] = Timestamp(now)
	return out
}

// jsonValue reduces a Go value to its JSON-native form so every backend
// sees the same representation regardless of the caller's types.
func jsonValue(v any) any {
	switch v.(type) {
	case nil, string, bool, float64:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
