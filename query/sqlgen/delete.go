package sqlgen

import (
	"github.com/satishbabariya/sqlkit/query/ast"
)

// DeleteCompiler renders DELETE statements
type DeleteCompiler struct {
	base
}

func (c *DeleteCompiler) Kind() ast.QueryKind { return ast.KindDelete }

// Compile renders DELETE FROM, WHERE, RETURNING, LIMIT and OFFSET.
func (c *DeleteCompiler) Compile(q ast.Query) (CompiledQuery, error) {
	if err := c.checkKind(q, ast.KindDelete); err != nil {
		return CompiledQuery{}, err
	}
	clauses := q.Base()

	st := &statement{}
	st.add("DELETE FROM")
	if err := c.addTable(st, clauses.Table); err != nil {
		return CompiledQuery{}, err
	}
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
