package ast

import (
	"reflect"
	"sort"
)

// Assignment binds a value to a column.
type Assignment struct {
	Column string
	Value  any
}

// Values is an ordered column to value list used by INSERT and UPDATE.
type Values []Assignment

// ValuesFromMap converts m into Values ordered by column name.
func ValuesFromMap(m map[string]any) Values {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Values, 0, len(keys))
	for _, k := range keys {
		out = append(out, Assignment{Column: k, Value: m[k]})
	}
	return out
}

// Columns returns the column names in order.
func (v Values) Columns() []string {
	cols := make([]string, len(v))
	for i, a := range v {
		cols[i] = a.Column
	}
	return cols
}

// Get returns the value bound to column.
func (v Values) Get(column string) (any, bool) {
	for _, a := range v {
		if a.Column == column {
			return a.Value, true
		}
	}
	return nil, false
}

// Clone returns a copy of v.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	return append(Values(nil), v...)
}

// ToList converts any slice or array except []byte into a fresh []any. It
// reports false for scalars, strings and []byte.
func ToList(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil, []byte, string:
		return nil, false
	case []any:
		return append([]any{}, v...), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
