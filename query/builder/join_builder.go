package builder

import (
	"strings"

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// JoinBuilder builds JOIN clauses
type JoinBuilder struct {
	joins []ast.JoinEntry
	err   error
}

// NewJoinBuilder creates a new JOIN builder
func NewJoinBuilder() *JoinBuilder {
	return &JoinBuilder{}
}

// AddJoin adds a JOIN whose ON condition is built by on. An optional alias
// names the joined table.
func (j *JoinBuilder) AddJoin(kind ast.JoinKind, table string, on func(*WhereBuilder), alias ...string) *JoinBuilder {
	if j.err != nil {
		return j
	}

	kind, err := ast.ParseJoinKind(string(kind))
	if err != nil {
		return j.fail(err)
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return j.fail(ast.NewValidationError("join", "table name must not be empty", table))
	}

	wb := NewWhereBuilder()
	if on != nil {
		on(wb)
	}
	cond, err := wb.Build()
	if err != nil {
		return j.fail(err)
	}
	if cond.Len() == 0 {
		return j.fail(ast.NewValidationError("join", "JOIN must have at least one ON condition", table))
	}

	entry := ast.JoinEntry{Kind: kind, Table: table, On: cond}
	if len(alias) > 0 {
		entry.Alias = strings.TrimSpace(alias[0])
	}
	j.joins = append(j.joins, entry)
	return j
}

// InnerJoin adds an INNER JOIN
func (j *JoinBuilder) InnerJoin(table string, on func(*WhereBuilder), alias ...string) *JoinBuilder {
	return j.AddJoin(ast.JoinInner, table, on, alias...)
}

// LeftJoin adds a LEFT JOIN
func (j *JoinBuilder) LeftJoin(table string, on func(*WhereBuilder), alias ...string) *JoinBuilder {
	return j.AddJoin(ast.JoinLeft, table, on, alias...)
}

// RightJoin adds a RIGHT JOIN
func (j *JoinBuilder) RightJoin(table string, on func(*WhereBuilder), alias ...string) *JoinBuilder {
	return j.AddJoin(ast.JoinRight, table, on, alias...)
}

// FullJoin adds a FULL JOIN
func (j *JoinBuilder) FullJoin(table string, on func(*WhereBuilder), alias ...string) *JoinBuilder {
	return j.AddJoin(ast.JoinFull, table, on, alias...)
}

// Err returns the first recorded error.
func (j *JoinBuilder) Err() error {
	return j.err
}

// Build returns the JOIN clauses in the order they were added
func (j *JoinBuilder) Build() ([]ast.JoinEntry, error) {
	if j.err != nil {
		return nil, j.err
	}
	out := make([]ast.JoinEntry, len(j.joins))
	for i, entry := range j.joins {
		entry.On = entry.On.Clone()
		out[i] = entry
	}
	return out, nil
}

func (j *JoinBuilder) fail(err error) *JoinBuilder {
	debug.Warn("join builder rejected join", "error", err)
	j.err = err
	return j
}
