package builder

import (
	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// InsertBuilder builds INSERT statements
type InsertBuilder struct {
	returning[*InsertBuilder]
	table  string
	values ast.Values
	err    error
}

// NewInsertBuilder creates a new INSERT builder
func NewInsertBuilder() *InsertBuilder {
	b := &InsertBuilder{}
	b.returning.self = b
	return b
}

// Into sets the target table
func (b *InsertBuilder) Into(table string) *InsertBuilder {
	if b.err != nil {
		return b
	}
	name, err := validateTable("into", table)
	if err != nil {
		return b.fail(err)
	}
	b.table = name
	return b
}

// Values replaces the inserted values. Columns are ordered by name.
func (b *InsertBuilder) Values(values map[string]any) *InsertBuilder {
	return b.OrderedValues(ast.ValuesFromMap(values))
}

// OrderedValues replaces the inserted values, keeping the given column order.
func (b *InsertBuilder) OrderedValues(values ast.Values) *InsertBuilder {
	if b.err != nil {
		return b
	}
	if err := validateValues("values", values); err != nil {
		return b.fail(err)
	}
	b.values = values.Clone()
	return b
}

// Err returns the first recorded error.
func (b *InsertBuilder) Err() error {
	if b.err != nil {
		return b.err
	}
	return b.returning.err
}

// Build freezes the builder into an InsertQuery
func (b *InsertBuilder) Build() (ast.InsertQuery, error) {
	if err := b.Err(); err != nil {
		return ast.InsertQuery{}, err
	}
	if _, err := validateTable("into", b.table); err != nil {
		return ast.InsertQuery{}, err
	}
	if len(b.values) == 0 {
		return ast.InsertQuery{}, ast.NewValidationError("values", "insert requires at least one value", nil)
	}

	ret, err := b.buildReturning()
	if err != nil {
		return ast.InsertQuery{}, err
	}
	return ast.InsertQuery{
		Clauses: ast.Clauses{Table: b.table, Joins: []ast.JoinEntry{}, Returning: ret},
		Values:  b.values.Clone(),
	}, nil
}

func (b *InsertBuilder) fail(err error) *InsertBuilder {
	debug.Warn("insert builder rejected call", "error", err)
	b.err = err
	return b
}

func validateValues(field string, values ast.Values) error {
	seen := make(map[string]bool, len(values))
	for _, a := range values {
		if a.Column == "" {
			return ast.NewValidationError(field, "column name must not be empty", a.Value)
		}
		if seen[a.Column] {
			return ast.NewValidationError(field, "duplicate column "+a.Column, a.Value)
		}
		seen[a.Column] = true
	}
	return nil
}
