package sqlgen

import (
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// InsertCompiler renders INSERT statements
type InsertCompiler struct {
	base
}

func (c *InsertCompiler) Kind() ast.QueryKind { return ast.KindInsert }

// Compile renders INSERT INTO, the column and VALUES lists in value order,
// then RETURNING, LIMIT and OFFSET.
func (c *InsertCompiler) Compile(q ast.Query) (CompiledQuery, error) {
	if err := c.checkKind(q, ast.KindInsert); err != nil {
		return CompiledQuery{}, err
	}
	var values ast.Values
	switch iq := q.(type) {
	case ast.InsertQuery:
		values = iq.Values
	case *ast.InsertQuery:
		values = iq.Values
	}
	if len(values) == 0 {
		return CompiledQuery{}, clauseError("VALUES", ast.NewValidationError("values", "insert requires at least one value", nil))
	}
	clauses := q.Base()

	st := &statement{}
	st.add("INSERT INTO")
	if err := c.addTable(st, clauses.Table); err != nil {
		return CompiledQuery{}, err
	}

	cols := make([]string, len(values))
	tokens := make([]string, len(values))
	for i, a := range values {
		cols[i] = c.Quoter.EscapeIdentifier(a.Column)
		tokens[i] = c.Params.Next()
		st.params = append(st.params, a.Value)
	}
	st.add("("+strings.Join(cols, ", ")+")", "VALUES", "("+strings.Join(tokens, ", ")+")")

	if err := c.addReturning(st, clauses.Returning); err != nil {
		return CompiledQuery{}, err
	}
	if err := c.addLimitOffset(st, clauses); err != nil {
		return CompiledQuery{}, err
	}
	return st.result(), nil
}
