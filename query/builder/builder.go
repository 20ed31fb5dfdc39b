// Package builder provides the fluent builders that assemble query
// descriptions.
package builder

import (
	"fmt"

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// WhereBuilder builds a condition tree for WHERE and JOIN ON clauses.
//
// The first failing call is recorded and returned by Build; every later call
// is a no-op.
type WhereBuilder struct {
	conditions []ast.ConditionNode
	err        error
}

// NewWhereBuilder creates a new WHERE builder
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddComparison appends a comparison tagged with connector. left may carry
// an alias in the form "name AS alias".
func (w *WhereBuilder) AddComparison(left string, op ast.ComparisonOperator, right any, connector ast.LogicalOperator, isColumnComparison bool) *WhereBuilder {
	if w.err != nil {
		return w
	}

	col, err := ast.ParseColumn(left)
	if err != nil {
		return w.fail(err)
	}
	op, err = ast.ParseComparisonOperator(string(op))
	if err != nil {
		return w.fail(err)
	}
	connector, err = ast.ParseLogicalOperator(string(connector))
	if err != nil {
		return w.fail(err)
	}

	if list, ok := ast.ToList(right); ok {
		if op.TakesList() && len(list) == 0 {
			return w.fail(ast.NewValidationError(col.Name, fmt.Sprintf("%s requires a non-empty list", op), right))
		}
		right = list
	} else if op.TakesList() {
		return w.fail(ast.NewValidationError(col.Name, fmt.Sprintf("%s requires a list", op), right))
	}

	if isColumnComparison {
		if right, err = toColumnRefs(right); err != nil {
			return w.fail(err)
		}
	}

	w.conditions = append(w.conditions, ast.Comparison{
		Left:               col,
		Operator:           op,
		Right:              right,
		IsColumnComparison: isColumnComparison,
		Connector:          connector,
	})
	return w
}

// Where adds a comparison joined with AND
func (w *WhereBuilder) Where(left string, op ast.ComparisonOperator, right any) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.And, false)
}

// AndWhere is an alias of Where
func (w *WhereBuilder) AndWhere(left string, op ast.ComparisonOperator, right any) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.And, false)
}

// OrWhere adds a comparison joined with OR
func (w *WhereBuilder) OrWhere(left string, op ast.ComparisonOperator, right any) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.Or, false)
}

// WhereNot adds a comparison joined with AND NOT
func (w *WhereBuilder) WhereNot(left string, op ast.ComparisonOperator, right any) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.AndNot, false)
}

// OrWhereNot adds a comparison joined with OR NOT
func (w *WhereBuilder) OrWhereNot(left string, op ast.ComparisonOperator, right any) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.OrNot, false)
}

// WhereIn adds an IN comparison joined with AND. values must be a non-empty
// slice or array.
func (w *WhereBuilder) WhereIn(left string, values any) *WhereBuilder {
	return w.AddComparison(left, ast.OpIn, values, ast.And, false)
}

// WhereNotIn adds a NOT IN comparison joined with AND
func (w *WhereBuilder) WhereNotIn(left string, values any) *WhereBuilder {
	return w.AddComparison(left, ast.OpNotIn, values, ast.And, false)
}

// OrWhereIn adds an IN comparison joined with OR
func (w *WhereBuilder) OrWhereIn(left string, values any) *WhereBuilder {
	return w.AddComparison(left, ast.OpIn, values, ast.Or, false)
}

// OrWhereNotIn adds a NOT IN comparison joined with OR
func (w *WhereBuilder) OrWhereNotIn(left string, values any) *WhereBuilder {
	return w.AddComparison(left, ast.OpNotIn, values, ast.Or, false)
}

// WhereColumn compares two columns, joined with AND. No value is bound.
func (w *WhereBuilder) WhereColumn(left string, op ast.ComparisonOperator, right string) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.And, true)
}

// OrWhereColumn compares two columns, joined with OR.
func (w *WhereBuilder) OrWhereColumn(left string, op ast.ComparisonOperator, right string) *WhereBuilder {
	return w.AddComparison(left, op, right, ast.Or, true)
}

// Len returns the number of top-level conditions added so far.
func (w *WhereBuilder) Len() int {
	return len(w.conditions)
}

// Err returns the first recorded error.
func (w *WhereBuilder) Err() error {
	return w.err
}

// Fail records err as the builder's error unless one is already recorded.
// Callers that assemble conditions outside the builder use it to surface
// their own failures through Build.
func (w *WhereBuilder) Fail(err error) *WhereBuilder {
	if w.err != nil || err == nil {
		return w
	}
	return w.fail(err)
}

// Build returns the root condition group. The group's connector is AND and
// its list is empty when nothing was added.
func (w *WhereBuilder) Build() (ast.ConditionGroup, error) {
	if w.err != nil {
		return ast.ConditionGroup{}, w.err
	}
	group := ast.ConditionGroup{Connector: ast.And, Conditions: []ast.ConditionNode{}}
	group.Conditions = append(group.Conditions, w.conditions...)
	return group.Clone(), nil
}

func (w *WhereBuilder) fail(err error) *WhereBuilder {
	debug.Warn("where builder rejected condition", "error", err)
	w.err = err
	return w
}

func toColumnRefs(right any) (any, error) {
	switch r := right.(type) {
	case ast.ColumnRef:
		if r.Name == "" {
			return nil, ast.NewValidationError("column", "column name must not be empty", r)
		}
		return r, nil
	case string:
		return ast.ParseColumn(r)
	case []any:
		refs := make([]ast.ColumnRef, len(r))
		for i, item := range r {
			ref, err := toColumnRefs(item)
			if err != nil {
				return nil, err
			}
			col, ok := ref.(ast.ColumnRef)
			if !ok {
				return nil, ast.NewValidationError("column", "nested column lists are not supported", item)
			}
			refs[i] = col
		}
		return refs, nil
	}
	return nil, ast.NewValidationError("column", fmt.Sprintf("column comparison needs a column name, got %T", right), right)
}
