package sqlgen

import (
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// SelectCompiler renders SELECT statements
type SelectCompiler struct {
	base
}

func (c *SelectCompiler) Kind() ast.QueryKind { return ast.KindSelect }

// Compile renders columns, FROM, JOIN, WHERE, GROUP BY, ORDER BY, LIMIT and
// OFFSET in that order.
func (c *SelectCompiler) Compile(q ast.Query) (CompiledQuery, error) {
	if err := c.checkKind(q, ast.KindSelect); err != nil {
		return CompiledQuery{}, err
	}
	var columns []ast.ColumnRef
	switch sq := q.(type) {
	case ast.SelectQuery:
		columns = sq.Columns
	case *ast.SelectQuery:
		columns = sq.Columns
	}
	clauses := q.Base()

	st := &statement{}
	st.add("SELECT", c.columnList(columns), "FROM")
	if err := c.addTable(st, clauses.Table); err != nil {
		return CompiledQuery{}, err
	}
	if err := c.addJoins(st, clauses.Joins); err != nil {
		return CompiledQuery{}, err
	}
	if err := c.addWhere(st, clauses.Where); err != nil {
		return CompiledQuery{}, err
	}
	c.addGroupBy(st, clauses.GroupBy)
	c.addOrderBy(st, clauses.OrderBy)
	if err := c.addLimitOffset(st, clauses); err != nil {
		return CompiledQuery{}, err
	}
	return st.result(), nil
}

func (c *SelectCompiler) columnList(cols []ast.ColumnRef) string {
	if len(cols) == 0 {
		return "*"
	}
	items := make([]string, len(cols))
	for i, col := range cols {
		items[i] = c.Quoter.EscapeColumn(col)
	}
	return strings.Join(items, ", ")
}
