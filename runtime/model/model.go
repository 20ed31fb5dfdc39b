// Package model maps Go structs onto tables described in a metadata
// registry and runs the common statements for them.
package model

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/builder"
	"github.com/satishbabariya/sqlkit/runtime/client"
	"github.com/satishbabariya/sqlkit/runtime/metadata"
)

// Repository runs statements for the entity T. Columns are read from and
// written to the struct fields named by each column's Property.
type Repository[T any] struct {
	client *client.Client
	entity metadata.EntityMetadata
	fields map[string][]int
}

// NewRepository binds T to the entity registered under name.
func NewRepository[T any](c *client.Client, reg *metadata.Registry, name string) (*Repository[T], error) {
	entity, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("repository %s: %s is not a struct", name, typ)
	}
	fields := make(map[string][]int, len(entity.Columns))
	for _, col := range entity.Columns {
		f, ok := typ.FieldByName(col.Property)
		if !ok || !f.IsExported() {
			return nil, fmt.Errorf("repository %s: %s has no exported field %q", name, typ, col.Property)
		}
		fields[col.Property] = f.Index
	}
	return &Repository[T]{client: c, entity: entity, fields: fields}, nil
}

// Entity returns the metadata the repository was bound to.
func (r *Repository[T]) Entity() metadata.EntityMetadata { return r.entity }

// Select returns a SELECT builder over the entity's table with every
// registered column aliased to its property, ready for further clauses.
func (r *Repository[T]) Select() *builder.SelectBuilder {
	cols := make([]string, len(r.entity.Columns))
	for i, c := range r.entity.Columns {
		cols[i] = c.Name + " AS " + c.Property
	}
	return builder.NewSelectBuilder().From(r.entity.Table).Select(cols...)
}

// Find runs a SELECT built from Select.
func (r *Repository[T]) Find(ctx context.Context, b *builder.SelectBuilder) ([]T, error) {
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	rows, err := r.client.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := r.decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindAll returns every record matching where. A nil where selects all.
func (r *Repository[T]) FindAll(ctx context.Context, where func(*builder.WhereBuilder)) ([]T, error) {
	return r.Find(ctx, r.Select().Where(where))
}

// FindOne returns the first record matching where, or nil when none does.
func (r *Repository[T]) FindOne(ctx context.Context, where func(*builder.WhereBuilder)) (*T, error) {
	recs, err := r.Find(ctx, r.Select().Where(where).Limit(1))
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

// Insert writes record. Zero-valued fields are left to column defaults.
func (r *Repository[T]) Insert(ctx context.Context, record T) (sql.Result, error) {
	values := r.values(record, false)
	q, err := builder.New().Insert().Into(r.entity.Table).OrderedValues(values).Build()
	if err != nil {
		return nil, err
	}
	return r.client.Exec(ctx, q)
}

// Update writes the non-zero, non-key fields of record. A nil where matches
// the record by its primary keys.
func (r *Repository[T]) Update(ctx context.Context, record T, where func(*builder.WhereBuilder)) (sql.Result, error) {
	if where == nil {
		pk, err := r.primaryKey(record)
		if err != nil {
			return nil, err
		}
		where = pk
	}
	q, err := builder.New().Update().Table(r.entity.Table).
		SetValues(r.values(record, true)).
		Where(where).
		Build()
	if err != nil {
		return nil, err
	}
	return r.client.Exec(ctx, q)
}

// Delete removes record by its primary keys.
func (r *Repository[T]) Delete(ctx context.Context, record T) (sql.Result, error) {
	pk, err := r.primaryKey(record)
	if err != nil {
		return nil, err
	}
	return r.DeleteWhere(ctx, pk)
}

// DeleteWhere removes every record matching where. where must add at least
// one condition.
func (r *Repository[T]) DeleteWhere(ctx context.Context, where func(*builder.WhereBuilder)) (sql.Result, error) {
	if where == nil {
		return nil, ast.NewValidationError("where", "delete requires a condition", nil)
	}
	b := builder.New().Delete().From(r.entity.Table).Where(where)
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	if q.Where == nil {
		return nil, ast.NewValidationError("where", "delete requires a condition", nil)
	}
	return r.client.Exec(ctx, q)
}

func (r *Repository[T]) field(record reflect.Value, property string) reflect.Value {
	return record.FieldByIndex(r.fields[property])
}

func (r *Repository[T]) values(record T, skipKeys bool) ast.Values {
	rv := reflect.ValueOf(record)
	values := ast.Values{}
	for _, col := range r.entity.Columns {
		if skipKeys && r.entity.IsPrimaryKey(col.Property) {
			continue
		}
		f := r.field(rv, col.Property)
		if f.IsZero() {
			continue
		}
		values = append(values, ast.Assignment{Column: col.Name, Value: f.Interface()})
	}
	return values
}

func (r *Repository[T]) primaryKey(record T) (func(*builder.WhereBuilder), error) {
	if len(r.entity.PrimaryKeys) == 0 {
		return nil, ast.NewValidationError("primary_keys", fmt.Sprintf("%s has no primary key", r.entity.Name), nil)
	}

	rv := reflect.ValueOf(record)
	type key struct {
		column string
		value  any
	}
	keys := make([]key, len(r.entity.PrimaryKeys))
	for i, pk := range r.entity.PrimaryKeys {
		col, _ := r.entity.Column(pk)
		f := r.field(rv, pk)
		if f.IsZero() {
			return nil, ast.NewValidationError(col.Name, "primary key value must be set", f.Interface())
		}
		keys[i] = key{column: col.Name, value: f.Interface()}
	}

	return func(w *builder.WhereBuilder) {
		for _, k := range keys {
			w.Where(k.column, ast.OpEqual, k.value)
		}
	}, nil
}

// decode copies a result row into a new T, converting driver values to the
// field types.
func (r *Repository[T]) decode(row map[string]any) (T, error) {
	var rec T
	rv := reflect.ValueOf(&rec).Elem()
	for _, col := range r.entity.Columns {
		v, ok := row[col.Property]
		if !ok || v == nil {
			continue
		}
		f := r.field(rv, col.Property)
		src := reflect.ValueOf(v)
		switch {
		case src.Type().AssignableTo(f.Type()):
			f.Set(src)
		case src.Type().ConvertibleTo(f.Type()) && convertible(src.Kind(), f.Kind()):
			f.Set(src.Convert(f.Type()))
		default:
			return rec, fmt.Errorf("%s.%s: cannot assign %T to %s", r.entity.Name, col.Property, v, f.Type())
		}
	}
	return rec, nil
}

// convertible rejects conversions reflect allows but that change meaning,
// such as int to string.
func convertible(from, to reflect.Kind) bool {
	isNumber := func(k reflect.Kind) bool {
		return (k >= reflect.Int && k <= reflect.Float64) || k == reflect.Bool
	}
	if isNumber(from) || isNumber(to) {
		return isNumber(from) && isNumber(to) && (from == reflect.Bool) == (to == reflect.Bool)
	}
	return true
}
