package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// ConditionCompiler renders condition trees. Placeholders are taken from the
// shared ParameterManager during a single left-to-right walk, so the order
// of Params always matches the order of placeholders in SQL.
type ConditionCompiler struct {
	params ParameterManager
	quoter Quoter
}

// NewConditionCompiler creates a ConditionCompiler
func NewConditionCompiler(params ParameterManager, quoter Quoter) *ConditionCompiler {
	return &ConditionCompiler{params: params, quoter: quoter}
}

// Compile renders node and returns its SQL fragment and bound values.
func (c *ConditionCompiler) Compile(node ast.ConditionNode) (CompiledQuery, error) {
	switch n := node.(type) {
	case ast.Comparison:
		return c.compileComparison(n)
	case *ast.Comparison:
		return c.compileComparison(*n)
	case ast.ConditionGroup:
		return c.compileGroup(n)
	case *ast.ConditionGroup:
		return c.compileGroup(*n)
	default:
		return CompiledQuery{}, fmt.Errorf("unknown condition node %T", node)
	}
}

func (c *ConditionCompiler) compileGroup(g ast.ConditionGroup) (CompiledQuery, error) {
	var sb strings.Builder
	params := []any{}

	sb.WriteString("(")
	for i, child := range g.Conditions {
		compiled, err := c.Compile(child)
		if err != nil {
			return CompiledQuery{}, err
		}
		if i > 0 {
			connector := child.Link()
			if connector == "" {
				connector = ast.And
			}
			sb.WriteString(" " + string(connector) + " ")
		}
		sb.WriteString(compiled.SQL)
		params = append(params, compiled.Params...)
	}
	sb.WriteString(")")

	return CompiledQuery{SQL: sb.String(), Params: params}, nil
}

func (c *ConditionCompiler) compileComparison(cmp ast.Comparison) (CompiledQuery, error) {
	if cmp.Left.Name == "" {
		return CompiledQuery{}, ast.NewValidationError("column", "column name must not be empty", cmp.Left)
	}
	left := c.quoter.EscapeColumnName(cmp.Left)

	items, isList := ast.ToList(cmp.Right)
	if cmp.Operator.TakesList() {
		if !isList {
			return CompiledQuery{}, ast.NewValidationError(cmp.Left.Name, fmt.Sprintf("%s requires a list", cmp.Operator), cmp.Right)
		}
		if len(items) == 0 {
			return CompiledQuery{}, ast.NewValidationError(cmp.Left.Name, fmt.Sprintf("%s requires a non-empty list", cmp.Operator), cmp.Right)
		}
	}

	if isList {
		tokens := make([]string, len(items))
		params := []any{}
		for i, item := range items {
			if cmp.IsColumnComparison {
				ref, err := c.identifier(item)
				if err != nil {
					return CompiledQuery{}, err
				}
				tokens[i] = ref
				continue
			}
			tokens[i] = c.params.Next()
			params = append(params, item)
		}
		return CompiledQuery{
			SQL:    fmt.Sprintf("%s %s (%s)", left, cmp.Operator, strings.Join(tokens, ", ")),
			Params: params,
		}, nil
	}

	if cmp.IsColumnComparison {
		ref, err := c.identifier(cmp.Right)
		if err != nil {
			return CompiledQuery{}, err
		}
		return CompiledQuery{SQL: fmt.Sprintf("%s %s %s", left, cmp.Operator, ref), Params: []any{}}, nil
	}

	return CompiledQuery{
		SQL:    fmt.Sprintf("%s %s %s", left, cmp.Operator, c.params.Next()),
		Params: []any{cmp.Right},
	}, nil
}

func (c *ConditionCompiler) identifier(v any) (string, error) {
	switch r := v.(type) {
	case ast.ColumnRef:
		return c.quoter.EscapeColumnName(r), nil
	case string:
		if r == "" {
			return "", ast.NewValidationError("column", "column name must not be empty", r)
		}
		return c.quoter.EscapeColumnName(ast.ColumnRef{Name: r}), nil
	}
	return "", fmt.Errorf("column comparison needs a column reference, got %T", v)
}

// rootCondition renders a WHERE or ON tree. A root holding a single
// comparison is rendered without the surrounding parentheses.
func (c *ConditionCompiler) rootCondition(g ast.ConditionGroup) (CompiledQuery, error) {
	if len(g.Conditions) == 1 {
		if cmp, ok := g.Conditions[0].(ast.Comparison); ok {
			return c.compileComparison(cmp)
		}
	}
	return c.compileGroup(g)
}
