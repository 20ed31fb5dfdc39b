package builder

import (
	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// SelectBuilder builds SELECT statements
type SelectBuilder struct {
	clauses[*SelectBuilder]
	table   string
	columns []ast.ColumnRef
	err     error
}

// NewSelectBuilder creates a new SELECT builder
func NewSelectBuilder() *SelectBuilder {
	s := &SelectBuilder{}
	s.clauses = newClauses(s)
	return s
}

// From sets the table to select from
func (s *SelectBuilder) From(table string) *SelectBuilder {
	if s.err != nil {
		return s
	}
	name, err := validateTable("from", table)
	if err != nil {
		return s.fail(err)
	}
	s.table = name
	return s
}

// Select adds columns to the projection. With no arguments it selects every
// column; with arguments it drops a previously selected wildcard and appends
// each column, tagged with the current table.
func (s *SelectBuilder) Select(columns ...string) *SelectBuilder {
	if s.err != nil {
		return s
	}
	if len(columns) == 0 {
		s.columns = []ast.ColumnRef{ast.Wildcard}
		return s
	}

	kept := s.columns[:0]
	for _, c := range s.columns {
		if !c.IsWildcard() {
			kept = append(kept, c)
		}
	}
	s.columns = kept

	for _, name := range columns {
		col, err := ast.ParseColumn(name)
		if err != nil {
			return s.fail(err)
		}
		col.Table = s.table
		s.columns = append(s.columns, col)
	}
	return s
}

// Err returns the first recorded error.
func (s *SelectBuilder) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.clauses.Err()
}

// Build freezes the builder into a SelectQuery
func (s *SelectBuilder) Build() (ast.SelectQuery, error) {
	if err := s.Err(); err != nil {
		return ast.SelectQuery{}, err
	}
	if _, err := validateTable("from", s.table); err != nil {
		return ast.SelectQuery{}, err
	}

	common, err := s.buildCommon()
	if err != nil {
		return ast.SelectQuery{}, err
	}
	common.Table = s.table

	return ast.SelectQuery{
		Clauses: common,
		Columns: append([]ast.ColumnRef(nil), s.columns...),
	}, nil
}

func (s *SelectBuilder) fail(err error) *SelectBuilder {
	debug.Warn("select builder rejected call", "error", err)
	s.err = err
	return s
}
