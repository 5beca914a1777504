// Package mapper translates between the backend's flat snake_case rows
// and the camelCase domain structs, in both directions. The translation
// is declarative: column names derive from struct field names (or a
// `row` tag override), so entity types carry the whole mapping.
package mapper

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/serenize/snaker"

	"github.com/atelierhq/atelier/internal/rowstore"
)

// Defaulter lets an entity fill defaulted sub-structures after load,
// e.g. settings objects that are null in storage.
type Defaulter interface {
	ApplyDefaults()
}

type fieldSpec struct {
	jsonName string
	column   string
	readonly bool
}

var specCache sync.Map // reflect.Type -> []fieldSpec

func specsFor(t reflect.Type) []fieldSpec {
	if cached, ok := specCache.Load(t); ok {
		return cached.([]fieldSpec)
	}

	specs := make([]fieldSpec, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		jsonName := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				jsonName = name
			}
		}

		column := snaker.CamelToSnake(f.Name)
		readonly := false
		if tag, ok := f.Tag.Lookup("row"); ok {
			name, opts, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				column = name
			}
			if opts == "readonly" {
				readonly = true
			}
		}

		specs = append(specs, fieldSpec{jsonName: jsonName, column: column, readonly: readonly})
	}

	specCache.Store(t, specs)
	return specs
}

// FromRow decodes a backend row into the entity pointed to by out.
// Columns without a matching field are ignored; absent collection
// fields end up as empty slices/maps, never nil.
func FromRow(row rowstore.Row, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("mapper: out must be a struct pointer, got %T", out)
	}

	specs := specsFor(rv.Elem().Type())
	m := make(map[string]any, len(specs))
	for _, f := range specs {
		if v, ok := row[f.column]; ok && v != nil {
			m[f.jsonName] = v
		}
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("mapper: encoding row: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("mapper: decoding row into %T: %w", out, err)
	}

	fillCollections(rv.Elem())

	if d, ok := out.(Defaulter); ok {
		d.ApplyDefaults()
	}
	return nil
}

// ToRow serializes a full entity for an insert: every writable field is
// emitted, and a modification timestamp is stamped. Fields tagged
// `row:",readonly"` (server-assigned id and created_at) are omitted.
func ToRow(entity any, now time.Time) (rowstore.Row, error) {
	v := reflect.Indirect(reflect.ValueOf(entity))
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("mapper: entity must be a struct, got %T", entity)
	}

	data, err := json.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("mapper: encoding %T: %w", entity, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("mapper: decoding %T: %w", entity, err)
	}

	specs := specsFor(v.Type())
	out := make(rowstore.Row, len(specs)+1)
	for _, f := range specs {
		if f.readonly {
			continue
		}
		if val, ok := m[f.jsonName]; ok {
			out[f.column] = val
		}
	}
	out["updated_at"] = Timestamp(now)
	return out, nil
}

// Column derives the persisted column name for a domain field name.
// Names already containing an underscore pass through unchanged.
func Column(name string) string {
	if strings.Contains(name, "_") {
		return name
	}
	return snaker.CamelToSnake(name)
}

// Timestamp formats a write timestamp the way the backend stores it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func fillCollections(v reflect.Value) {
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.Slice:
			if f.IsNil() {
				f.Set(reflect.MakeSlice(f.Type(), 0, 0))
			}
		case reflect.Map:
			if f.IsNil() {
				f.Set(reflect.MakeMap(f.Type()))
			}
		}
	}
}
