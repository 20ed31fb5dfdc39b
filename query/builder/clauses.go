package builder

import (
	"strings"

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// clauses accumulates the clauses shared by every statement builder. T is
// the embedding builder, returned from each method so chains keep their
// concrete type.
type clauses[T any] struct {
	self    T
	where   *WhereBuilder
	joins   *JoinBuilder
	groupBy []ast.ColumnRef
	orderBy []ast.OrderEntry
	limit   *ast.Limit
	offset  *ast.Offset
	err     error
}

func newClauses[T any](self T) clauses[T] {
	return clauses[T]{
		self:  self,
		where: NewWhereBuilder(),
		joins: NewJoinBuilder(),
	}
}

// Where passes the statement's condition builder to fn. Repeated calls add
// to the same condition tree.
func (c *clauses[T]) Where(fn func(*WhereBuilder)) T {
	if c.err == nil && fn != nil {
		fn(c.where)
	}
	return c.self
}

// Join adds a JOIN of the given kind.
func (c *clauses[T]) Join(kind ast.JoinKind, table string, on func(*WhereBuilder), alias ...string) T {
	if c.err == nil {
		c.joins.AddJoin(kind, table, on, alias...)
	}
	return c.self
}

// InnerJoin adds an INNER JOIN
func (c *clauses[T]) InnerJoin(table string, on func(*WhereBuilder), alias ...string) T {
	return c.Join(ast.JoinInner, table, on, alias...)
}

// LeftJoin adds a LEFT JOIN
func (c *clauses[T]) LeftJoin(table string, on func(*WhereBuilder), alias ...string) T {
	return c.Join(ast.JoinLeft, table, on, alias...)
}

// RightJoin adds a RIGHT JOIN
func (c *clauses[T]) RightJoin(table string, on func(*WhereBuilder), alias ...string) T {
	return c.Join(ast.JoinRight, table, on, alias...)
}

// FullJoin adds a FULL JOIN
func (c *clauses[T]) FullJoin(table string, on func(*WhereBuilder), alias ...string) T {
	return c.Join(ast.JoinFull, table, on, alias...)
}

// GroupBy appends columns to the GROUP BY list. Duplicates are kept.
func (c *clauses[T]) GroupBy(columns ...string) T {
	for _, name := range columns {
		if c.err != nil {
			break
		}
		col, err := ast.ParseColumn(name)
		if err != nil {
			c.fail(err)
			break
		}
		c.groupBy = append(c.groupBy, col)
	}
	return c.self
}

// OrderBy appends an ORDER BY entry. An empty direction means ASC.
func (c *clauses[T]) OrderBy(column string, direction ast.OrderDirection) T {
	if c.err != nil {
		return c.self
	}
	col, err := ast.ParseColumn(column)
	if err != nil {
		c.fail(err)
		return c.self
	}
	dir, err := ast.ParseOrderDirection(string(direction))
	if err != nil {
		c.fail(err)
		return c.self
	}
	c.orderBy = append(c.orderBy, ast.OrderEntry{Column: col, Direction: dir})
	return c.self
}

// Limit sets the LIMIT clause, replacing any previous value.
func (c *clauses[T]) Limit(n int) T {
	if c.err != nil {
		return c.self
	}
	if n < 0 {
		c.fail(ast.NewValidationError("limit", "limit must be a non-negative integer", n))
		return c.self
	}
	c.limit = &ast.Limit{Count: n}
	return c.self
}

// Offset sets the OFFSET clause, replacing any previous value.
func (c *clauses[T]) Offset(n int) T {
	if c.err != nil {
		return c.self
	}
	if n < 0 {
		c.fail(ast.NewValidationError("offset", "offset must be a non-negative integer", n))
		return c.self
	}
	c.offset = &ast.Offset{Count: n}
	return c.self
}

// Err returns the first error recorded by the statement or its sub-builders.
func (c *clauses[T]) Err() error {
	if c.err != nil {
		return c.err
	}
	if err := c.where.Err(); err != nil {
		return err
	}
	return c.joins.Err()
}

func (c *clauses[T]) fail(err error) {
	debug.Warn("query builder rejected clause", "error", err)
	c.err = err
}

// buildCommon returns the shared clause bundle. WHERE is omitted when the
// condition tree is empty; Joins is always a non-nil list.
func (c *clauses[T]) buildCommon() (ast.Clauses, error) {
	if err := c.Err(); err != nil {
		return ast.Clauses{}, err
	}

	var out ast.Clauses
	where, err := c.where.Build()
	if err != nil {
		return ast.Clauses{}, err
	}
	if where.Len() > 0 {
		out.Where = &where
	}

	if out.Joins, err = c.joins.Build(); err != nil {
		return ast.Clauses{}, err
	}
	if c.groupBy != nil {
		out.GroupBy = append([]ast.ColumnRef(nil), c.groupBy...)
	}
	if c.orderBy != nil {
		out.OrderBy = append([]ast.OrderEntry(nil), c.orderBy...)
	}
	if c.limit != nil {
		l := *c.limit
		out.Limit = &l
	}
	if c.offset != nil {
		o := *c.offset
		out.Offset = &o
	}
	return out, nil
}

// returning accumulates a RETURNING list for INSERT, UPDATE and DELETE.
type returning[T any] struct {
	self    T
	columns []ast.ColumnRef
	err     error
}

// Returning appends columns to the RETURNING list.
func (r *returning[T]) Returning(columns ...string) T {
	for _, name := range columns {
		if r.err != nil {
			break
		}
		col, err := ast.ParseColumn(name)
		if err != nil {
			debug.Warn("query builder rejected returning column", "error", err)
			r.err = err
			break
		}
		r.columns = append(r.columns, col)
	}
	return r.self
}

func (r *returning[T]) buildReturning() ([]ast.ColumnRef, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.columns == nil {
		return nil, nil
	}
	return append([]ast.ColumnRef(nil), r.columns...), nil
}

func validateTable(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ast.NewValidationError(field, "table name must not be empty", name)
	}
	return name, nil
}
