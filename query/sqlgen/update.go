package sqlgen

import (
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// UpdateCompiler renders UPDATE statements
type UpdateCompiler struct {
	base
}

func (c *UpdateCompiler) Kind() ast.QueryKind { return ast.KindUpdate }

// Compile renders UPDATE, SET in value order, WHERE, RETURNING, LIMIT and
// OFFSET.
func (c *UpdateCompiler) Compile(q ast.Query) (CompiledQuery, error) {
	if err := c.checkKind(q, ast.KindUpdate); err != nil {
		return CompiledQuery{}, err
	}
	var values ast.Values
	switch uq := q.(type) {
	case ast.UpdateQuery:
		values = uq.Values
	case *ast.UpdateQuery:
		values = uq.Values
	}
	if len(values) == 0 {
		return CompiledQuery{}, clauseError("SET", ast.NewValidationError("set", "update requires at least one value", nil))
	}
	clauses := q.Base()

	st := &statement{}
	st.add("UPDATE")
	if err := c.addTable(st, clauses.Table); err != nil {
		return CompiledQuery{}, err
	}

	sets := make([]string, len(values))
	for i, a := range values {
		sets[i] = c.Quoter.EscapeIdentifier(a.Column) + " = " + c.Params.Next()
		st.params = append(st.params, a.Value)
	}
	st.add("SET", strings.Join(sets, ", "))

	if err := c.addWhere(st, clauses.Where); err != nil {
		return CompiledQuery{}, err
	}
	if err := c.addReturning(st, clauses.Returning); err != nil {
		return CompiledQuery{}, err
	}
	if err := c.addLimitOffset(st, clauses); err != nil {
		return CompiledQuery{}, err
	}
	return st.result(), nil
}
