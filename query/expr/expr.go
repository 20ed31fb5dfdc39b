// Package expr parses textual condition expressions such as
// `age > 18 AND (role = 'admin' OR @owner_id = @user_id)` into where-builder
// calls. Operands prefixed with "@" are column references.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/builder"
)

// ErrSyntax reports an expression that does not match the grammar.
var ErrSyntax = errors.New("invalid condition expression")

var parser = participle.MustBuild[Expression](
	participle.Lexer(ExprLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)

// Parse parses input into an expression tree.
func Parse(input string) (*Expression, error) {
	e, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return e, nil
}

// Apply parses input and appends its conditions to w.
func Apply(w *builder.WhereBuilder, input string) error {
	e, err := Parse(input)
	if err != nil {
		return err
	}
	if err := e.apply(w); err != nil {
		return err
	}
	return w.Err()
}

// Condition parses input and returns a function suitable for the builders'
// Where and join methods.
func Condition(input string) (func(*builder.WhereBuilder), error) {
	e, err := Parse(input)
	if err != nil {
		return nil, err
	}
	check := builder.NewWhereBuilder()
	if err := e.apply(check); err != nil {
		return nil, err
	}
	if err := check.Err(); err != nil {
		return nil, err
	}
	return func(w *builder.WhereBuilder) {
		if err := e.apply(w); err != nil {
			w.Fail(err)
		}
	}, nil
}

func (e *Expression) apply(w *builder.WhereBuilder) error {
	if err := e.Head.apply(w, ast.And); err != nil {
		return err
	}
	for _, c := range e.Tail {
		if err := c.Term.apply(w, c.connector()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chain) connector() ast.LogicalOperator {
	op := ast.LogicalOperator(strings.ToUpper(c.Op))
	switch {
	case op == ast.And && c.Not:
		return ast.AndNot
	case op == ast.Or && c.Not:
		return ast.OrNot
	}
	return op
}

func (t *Term) apply(w *builder.WhereBuilder, connector ast.LogicalOperator) error {
	if t.Group != nil {
		var inner error
		w.Group(connector, func(g *builder.WhereBuilder) {
			inner = t.Group.apply(g)
		})
		return inner
	}
	return t.Comparison.apply(w, connector)
}

func (c *Comparison) apply(w *builder.WhereBuilder, connector ast.LogicalOperator) error {
	if c.RHS.In != nil {
		op := ast.OpIn
		if c.RHS.In.Not {
			op = ast.OpNotIn
		}
		values := make([]any, len(c.RHS.In.Values))
		columns := 0
		for i, o := range c.RHS.In.Values {
			v, isColumn, err := o.value()
			if err != nil {
				return err
			}
			if isColumn {
				columns++
			}
			values[i] = v
		}
		if columns != 0 && columns != len(values) {
			return fmt.Errorf("%w: %s mixes columns and values in %s list", ErrSyntax, c.Column, op)
		}
		w.AddComparison(c.Column, op, values, connector, columns > 0)
		return nil
	}

	op, err := ast.ParseComparisonOperator(c.RHS.Compare.Op)
	if err != nil {
		return err
	}
	v, isColumn, err := c.RHS.Compare.Value.value()
	if err != nil {
		return err
	}
	w.AddComparison(c.Column, op, v, connector, isColumn)
	return nil
}

func (o *Operand) value() (any, bool, error) {
	switch {
	case o.Column != nil:
		return *o.Column, true, nil
	case o.Number != nil:
		if !strings.Contains(*o.Number, ".") {
			n, err := strconv.Atoi(*o.Number)
			if err != nil {
				return nil, false, fmt.Errorf("%w: integer %s out of range", ErrSyntax, *o.Number)
			}
			return n, false, nil
		}
		f, err := strconv.ParseFloat(*o.Number, 64)
		if err != nil {
			return nil, false, fmt.Errorf("%w: bad number %q", ErrSyntax, *o.Number)
		}
		return f, false, nil
	case o.String != nil:
		s, err := unquote(*o.String)
		return s, false, err
	case o.Bool != nil:
		return strings.EqualFold(*o.Bool, "true"), false, nil
	case o.Null:
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%w: empty operand", ErrSyntax)
}

func unquote(raw string) (string, error) {
	if strings.HasPrefix(raw, "'") {
		return strings.ReplaceAll(raw[1:len(raw)-1], "''", "'"), nil
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return "", fmt.Errorf("%w: bad string %s", ErrSyntax, raw)
	}
	return s, nil
}
