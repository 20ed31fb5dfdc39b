package document

import (
	"fmt"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/builder"
	"github.com/satishbabariya/sqlkit/query/expr"
)

// Query builds the document into a query description.
func (d Document) Query() (ast.Query, error) {
	switch ast.QueryKind(d.Kind) {
	case ast.KindSelect:
		b := builder.NewSelectBuilder().From(d.Table)
		if len(d.Columns) > 0 {
			b.Select(d.Columns...)
		}
		if err := applyCommon[*builder.SelectBuilder](d, b); err != nil {
			return nil, err
		}
		return b.Build()

	case ast.KindInsert:
		b := builder.NewInsertBuilder().Into(d.Table).OrderedValues(ast.Values(d.Values))
		b.Returning(d.Returning...)
		return b.Build()

	case ast.KindUpdate:
		b := builder.NewUpdateBuilder().Table(d.Table).SetValues(ast.Values(d.Values))
		if err := applyCommon[*builder.UpdateBuilder](d, b); err != nil {
			return nil, err
		}
		b.Returning(d.Returning...)
		return b.Build()

	case ast.KindDelete:
		b := builder.NewDeleteBuilder().From(d.Table)
		if err := applyCommon[*builder.DeleteBuilder](d, b); err != nil {
			return nil, err
		}
		b.Returning(d.Returning...)
		return b.Build()
	}
	return nil, fmt.Errorf("%w: %q", ast.ErrUnsupportedQueryKind, d.Kind)
}

type clauseSetter[T any] interface {
	Where(func(*builder.WhereBuilder)) T
	Join(ast.JoinKind, string, func(*builder.WhereBuilder), ...string) T
	GroupBy(...string) T
	OrderBy(string, ast.OrderDirection) T
	Limit(int) T
	Offset(int) T
}

// applyCommon feeds the shared clauses through the builder's own methods so
// validation matches hand-written chains.
func applyCommon[T any](d Document, b clauseSetter[T]) error {
	for _, j := range d.Joins {
		on, err := expr.Condition(j.On)
		if err != nil {
			return fmt.Errorf("join %s: %w", j.Table, err)
		}
		kind, err := ast.ParseJoinKind(j.Kind)
		if err != nil {
			return err
		}
		if j.Alias != "" {
			b.Join(kind, j.Table, on, j.Alias)
		} else {
			b.Join(kind, j.Table, on)
		}
	}

	if d.Where != "" {
		cond, err := expr.Condition(d.Where)
		if err != nil {
			return fmt.Errorf("where: %w", err)
		}
		b.Where(cond)
	}

	if len(d.GroupBy) > 0 {
		b.GroupBy(d.GroupBy...)
	}
	for _, o := range d.OrderBy {
		b.OrderBy(o.Column, ast.OrderDirection(o.Direction))
	}
	if d.Limit != nil {
		b.Limit(*d.Limit)
	}
	if d.Offset != nil {
		b.Offset(*d.Offset)
	}
	return nil
}
