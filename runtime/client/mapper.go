package client

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// ScanRows scans every row into a T. Columns are matched to fields by db
// tag, then by case-insensitive field name; unmatched columns are dropped.
//
// A NULL column mapped to a field that cannot hold it fails with
// ErrNullValue naming the column and field. Pointer, slice, interface and
// sql.Scanner fields accept NULL.
func ScanRows[T any](rows *sql.Rows) ([]T, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("scan rows: %s is not a struct", typ)
	}

	fields := make([]*reflect.StructField, len(columns))
	for i, col := range columns {
		if f, ok := findFieldByName(typ, col); ok {
			fields[i] = &f
		}
	}

	results := []T{}
	for rows.Next() {
		var result T
		val := reflect.ValueOf(&result).Elem()

		dest := make([]any, len(columns))
		holders := make([]reflect.Value, len(columns))
		for i, f := range fields {
			switch {
			case f == nil:
				dest[i] = new(any)
			case acceptsNull(f.Type):
				dest[i] = val.FieldByIndex(f.Index).Addr().Interface()
			default:
				holders[i] = reflect.New(reflect.PointerTo(f.Type))
				dest[i] = holders[i].Interface()
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan rows into %s: %w", typ, err)
		}

		for i, h := range holders {
			if !h.IsValid() {
				continue
			}
			if h.Elem().IsNil() {
				return nil, fmt.Errorf("scan column %q into %s.%s: %w", columns[i], typ, fields[i].Name, ErrNullValue)
			}
			val.FieldByIndex(fields[i].Index).Set(h.Elem().Elem())
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func acceptsNull(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return true
	}
	return reflect.PointerTo(t).Implements(scannerType)
}

func scanMaps(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// findFieldByName finds an exported struct field by column name
func findFieldByName(typ reflect.Type, colName string) (reflect.StructField, bool) {
	var fallback reflect.StructField
	found := false
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag := ColumnTag(field); tag == "-" {
			continue
		} else if tag == colName {
			return field, true
		}
		if !found && strings.EqualFold(field.Name, colName) {
			fallback, found = field, true
		}
	}
	return fallback, found
}

// ColumnTag returns the column name in a field's db tag, or "".
func ColumnTag(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
	return name
}
