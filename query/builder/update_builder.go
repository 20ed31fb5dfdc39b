package builder

import (
	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// UpdateBuilder builds UPDATE statements
type UpdateBuilder struct {
	clauses[*UpdateBuilder]
	returning[*UpdateBuilder]
	table  string
	values ast.Values
	err    error
}

// NewUpdateBuilder creates a new UPDATE builder
func NewUpdateBuilder() *UpdateBuilder {
	b := &UpdateBuilder{}
	b.clauses = newClauses(b)
	b.returning.self = b
	return b
}

// Table sets the table to update
func (b *UpdateBuilder) Table(table string) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	name, err := validateTable("table", table)
	if err != nil {
		return b.fail(err)
	}
	b.table = name
	return b
}

// Set replaces the assigned values. Columns are ordered by name.
func (b *UpdateBuilder) Set(values map[string]any) *UpdateBuilder {
	return b.SetValues(ast.ValuesFromMap(values))
}

// SetValues replaces the assigned values, keeping the given column order.
func (b *UpdateBuilder) SetValues(values ast.Values) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	if err := validateValues("set", values); err != nil {
		return b.fail(err)
	}
	b.values = values.Clone()
	return b
}

// Err returns the first recorded error.
func (b *UpdateBuilder) Err() error {
	if b.err != nil {
		return b.err
	}
	if b.returning.err != nil {
		return b.returning.err
	}
	return b.clauses.Err()
}

// Build freezes the builder into an UpdateQuery
func (b *UpdateBuilder) Build() (ast.UpdateQuery, error) {
	if err := b.Err(); err != nil {
		return ast.UpdateQuery{}, err
	}
	if _, err := validateTable("table", b.table); err != nil {
		return ast.UpdateQuery{}, err
	}
	if len(b.values) == 0 {
		return ast.UpdateQuery{}, ast.NewValidationError("set", "update requires at least one value", nil)
	}

	common, err := b.buildCommon()
	if err != nil {
		return ast.UpdateQuery{}, err
	}
	common.Table = b.table
	if common.Returning, err = b.buildReturning(); err != nil {
		return ast.UpdateQuery{}, err
	}

	return ast.UpdateQuery{Clauses: common, Values: b.values.Clone()}, nil
}

func (b *UpdateBuilder) fail(err error) *UpdateBuilder {
	debug.Warn("update builder rejected call", "error", err)
	b.err = err
	return b
}
