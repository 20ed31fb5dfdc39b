package builder

import (
	"github.com/satishbabariya/sqlkit/query/ast"
)

// Group opens a nested builder, passes it to fn, and embeds the resulting
// group tagged with connector.
func (w *WhereBuilder) Group(connector ast.LogicalOperator, fn func(*WhereBuilder)) *WhereBuilder {
	if w.err != nil {
		return w
	}
	connector, err := ast.ParseLogicalOperator(string(connector))
	if err != nil {
		return w.fail(err)
	}

	sub := NewWhereBuilder()
	if fn != nil {
		fn(sub)
	}
	group, err := sub.Build()
	if err != nil {
		w.err = err
		return w
	}
	group.Connector = connector
	w.conditions = append(w.conditions, group)
	return w
}

// AndGroup embeds a nested group joined with AND
func (w *WhereBuilder) AndGroup(fn func(*WhereBuilder)) *WhereBuilder {
	return w.Group(ast.And, fn)
}

// OrGroup embeds a nested group joined with OR
func (w *WhereBuilder) OrGroup(fn func(*WhereBuilder)) *WhereBuilder {
	return w.Group(ast.Or, fn)
}

// NotGroup embeds a nested group joined with AND NOT
func (w *WhereBuilder) NotGroup(fn func(*WhereBuilder)) *WhereBuilder {
	return w.Group(ast.AndNot, fn)
}
