package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// StatementCompiler renders one statement kind.
type StatementCompiler interface {
	Kind() ast.QueryKind
	Compile(q ast.Query) (CompiledQuery, error)
}

// Shared holds the collaborators every statement compiler of one dialect
// instance uses. The ParameterManager is reset by the owner, not here.
type Shared struct {
	Dialect    Dialect
	Params     ParameterManager
	Quoter     Quoter
	Conditions *ConditionCompiler
}

// NewShared wires a fresh ParameterManager, Quoter and ConditionCompiler
// for d.
func NewShared(d Dialect) *Shared {
	params := d.NewParams()
	quoter := NewQuoter(d.Quote)
	return &Shared{
		Dialect:    d,
		Params:     params,
		Quoter:     quoter,
		Conditions: NewConditionCompiler(params, quoter),
	}
}

// NewStatementCompilers returns one compiler per statement kind.
func NewStatementCompilers(s *Shared) []StatementCompiler {
	return []StatementCompiler{
		&SelectCompiler{base{s}},
		&InsertCompiler{base{s}},
		&UpdateCompiler{base{s}},
		&DeleteCompiler{base{s}},
	}
}

// statement accumulates SQL parts and parameters.
type statement struct {
	parts  []string
	params []any
}

func (st *statement) add(parts ...string) {
	st.parts = append(st.parts, parts...)
}

func (st *statement) result() CompiledQuery {
	params := st.params
	if params == nil {
		params = []any{}
	}
	return CompiledQuery{SQL: strings.Join(st.parts, " "), Params: params}
}

type base struct {
	*Shared
}

func (b base) checkKind(q ast.Query, want ast.QueryKind) error {
	if q == nil {
		return fmt.Errorf("%w: nil query", ast.ErrUnsupportedQueryKind)
	}
	if q.Kind() != want {
		return fmt.Errorf("%w: %s compiler received %s query", ast.ErrUnsupportedQueryKind, want, q.Kind())
	}
	return nil
}

func (b base) addTable(st *statement, table string) error {
	if strings.TrimSpace(table) == "" {
		return clauseError("TABLE", ast.NewValidationError("table", "table name must not be empty", table))
	}
	st.add(b.Quoter.EscapeTable(table))
	return nil
}

func (b base) addJoins(st *statement, joins []ast.JoinEntry) error {
	for _, j := range joins {
		if j.Kind == ast.JoinFull && !b.Dialect.SupportsFullJoin {
			return unsupportedClause(b.Dialect, "FULL JOIN")
		}
		if j.On.Len() == 0 {
			return clauseError("JOIN", ast.NewValidationError("join", "JOIN must have at least one ON condition", j.Table))
		}
		on, err := b.Conditions.rootCondition(j.On)
		if err != nil {
			return clauseError("JOIN", err)
		}

		target := b.Quoter.EscapeTable(j.Table)
		if j.Alias != "" {
			target += " AS " + b.Quoter.EscapeIdentifier(j.Alias)
		}
		st.add(string(j.Kind)+" JOIN", target, "ON", on.SQL)
		st.params = append(st.params, on.Params...)
	}
	return nil
}

func (b base) addWhere(st *statement, where *ast.ConditionGroup) error {
	if where == nil || where.Len() == 0 {
		return nil
	}
	cond, err := b.Conditions.rootCondition(*where)
	if err != nil {
		return clauseError("WHERE", err)
	}
	st.add("WHERE", cond.SQL)
	st.params = append(st.params, cond.Params...)
	return nil
}

func (b base) addGroupBy(st *statement, cols []ast.ColumnRef) {
	if len(cols) == 0 {
		return
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = b.Quoter.EscapeColumnName(c)
	}
	st.add("GROUP BY", strings.Join(names, ", "))
}

func (b base) addOrderBy(st *statement, entries []ast.OrderEntry) {
	if len(entries) == 0 {
		return
	}
	items := make([]string, len(entries))
	for i, e := range entries {
		dir := e.Direction
		if dir == "" {
			dir = ast.Asc
		}
		items[i] = b.Quoter.EscapeColumnName(e.Column) + " " + string(dir)
	}
	st.add("ORDER BY", strings.Join(items, ", "))
}

func (b base) addReturning(st *statement, cols []ast.ColumnRef) error {
	if len(cols) == 0 {
		return nil
	}
	if !b.Dialect.SupportsReturning {
		return unsupportedClause(b.Dialect, "RETURNING")
	}
	items := make([]string, len(cols))
	for i, c := range cols {
		items[i] = b.Quoter.EscapeColumn(c)
	}
	st.add("RETURNING", strings.Join(items, ", "))
	return nil
}

func (b base) addLimit(st *statement, limit *ast.Limit) error {
	if limit == nil {
		return nil
	}
	if limit.Count < 0 {
		return clauseError("LIMIT", ast.NewValidationError("limit", "limit must be a non-negative integer", limit.Count))
	}
	st.add("LIMIT", b.Params.Next())
	st.params = append(st.params, limit.Count)
	return nil
}

func (b base) addOffset(st *statement, offset *ast.Offset, hasLimit bool) error {
	if offset == nil {
		return nil
	}
	if offset.Count < 0 {
		return clauseError("OFFSET", ast.NewValidationError("offset", "offset must be a non-negative integer", offset.Count))
	}
	if !hasLimit && b.Dialect.OffsetWithoutLimit != "" {
		st.add(b.Dialect.OffsetWithoutLimit)
	}
	st.add("OFFSET", b.Params.Next())
	st.params = append(st.params, offset.Count)
	return nil
}

func (b base) addLimitOffset(st *statement, c ast.Clauses) error {
	if err := b.addLimit(st, c.Limit); err != nil {
		return err
	}
	return b.addOffset(st, c.Offset, c.Limit != nil)
}
