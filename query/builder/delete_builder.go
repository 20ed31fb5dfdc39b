package builder

import (
	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// DeleteBuilder builds DELETE statements
type DeleteBuilder struct {
	clauses[*DeleteBuilder]
	returning[*DeleteBuilder]
	table string
	err   error
}

// NewDeleteBuilder creates a new DELETE builder
func NewDeleteBuilder() *DeleteBuilder {
	b := &DeleteBuilder{}
	b.clauses = newClauses(b)
	b.returning.self = b
	return b
}

// From sets the table to delete from
func (b *DeleteBuilder) From(table string) *DeleteBuilder {
	if b.err != nil {
		return b
	}
	name, err := validateTable("from", table)
	if err != nil {
		debug.Warn("delete builder rejected call", "error", err)
		b.err = err
		return b
	}
	b.table = name
	return b
}

// Err returns the first recorded error.
func (b *DeleteBuilder) Err() error {
	if b.err != nil {
		return b.err
	}
	if b.returning.err != nil {
		return b.returning.err
	}
	return b.clauses.Err()
}

// Build freezes the builder into a DeleteQuery
func (b *DeleteBuilder) Build() (ast.DeleteQuery, error) {
	if err := b.Err(); err != nil {
		return ast.DeleteQuery{}, err
	}
	if _, err := validateTable("from", b.table); err != nil {
		return ast.DeleteQuery{}, err
	}

	common, err := b.buildCommon()
	if err != nil {
		return ast.DeleteQuery{}, err
	}
	common.Table = b.table
	if common.Returning, err = b.buildReturning(); err != nil {
		return ast.DeleteQuery{}, err
	}
	return ast.DeleteQuery{Clauses: common}, nil
}
