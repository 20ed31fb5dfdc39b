package sqlgen_test

import (
	"testing"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/sqlgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, d sqlgen.Dialect, q ast.Query) (sqlgen.CompiledQuery, error) {
	t.Helper()
	shared := sqlgen.NewShared(d)
	for _, c := range sqlgen.NewStatementCompilers(shared) {
		if c.Kind() == q.Kind() {
			shared.Params.Reset()
			return c.Compile(q)
		}
	}
	t.Fatalf("no compiler for %s", q.Kind())
	return sqlgen.CompiledQuery{}, nil
}

func where(nodes ...ast.ConditionNode) *ast.ConditionGroup {
	return &ast.ConditionGroup{Connector: ast.And, Conditions: nodes}
}

func TestSelectCompiler(t *testing.T) {
	tests := []struct {
		name       string
		dialect    sqlgen.Dialect
		query      ast.SelectQuery
		wantSQL    string
		wantParams []any
	}{
		{
			name:       "wildcard",
			dialect:    sqlgen.Postgres,
			query:      ast.SelectQuery{Clauses: ast.Clauses{Table: "users"}},
			wantSQL:    `SELECT * FROM "users"`,
			wantParams: []any{},
		},
		{
			name:    "columns and where",
			dialect: sqlgen.Postgres,
			query: ast.SelectQuery{
				Clauses: ast.Clauses{Table: "users", Where: where(cmp("age", ast.OpGreaterThan, 18, ast.And))},
				Columns: []ast.ColumnRef{{Name: "id"}, {Name: "name"}},
			},
			wantSQL:    `SELECT "id", "name" FROM "users" WHERE "age" > $1`,
			wantParams: []any{18},
		},
		{
			name:    "full clause order",
			dialect: sqlgen.Postgres,
			query: ast.SelectQuery{
				Clauses: ast.Clauses{
					Table: "users",
					Joins: []ast.JoinEntry{{
						Kind:  ast.JoinLeft,
						Table: "posts",
						Alias: "p",
						On: ast.ConditionGroup{Conditions: []ast.ConditionNode{
							ast.Comparison{Left: ast.ColumnRef{Name: "users.id"}, Operator: ast.OpEqual, Right: ast.ColumnRef{Name: "p.user_id"}, IsColumnComparison: true},
							cmp("p.published", ast.OpEqual, true, ast.And),
						}},
					}},
					Where:   where(cmp("users.age", ast.OpGreaterOrEqual, 21, ast.And), cmp("users.role", ast.OpEqual, "admin", ast.Or)),
					GroupBy: []ast.ColumnRef{{Name: "users.id"}},
					OrderBy: []ast.OrderEntry{{Column: ast.ColumnRef{Name: "users.name"}, Direction: ast.Asc}, {Column: ast.ColumnRef{Name: "id", Table: "users"}, Direction: ast.Desc}},
					Limit:   &ast.Limit{Count: 10},
					Offset:  &ast.Offset{Count: 20},
				},
				Columns: []ast.ColumnRef{{Name: "id", Table: "users"}, {Name: "p.title", Alias: "title"}},
			},
			wantSQL: `SELECT "users"."id", "p"."title" AS "title" FROM "users" ` +
				`LEFT JOIN "posts" AS "p" ON ("users"."id" = "p"."user_id" AND "p"."published" = $1) ` +
				`WHERE ("users"."age" >= $2 OR "users"."role" = $3) ` +
				`GROUP BY "users"."id" ` +
				`ORDER BY "users"."name" ASC, "users"."id" DESC LIMIT $4 OFFSET $5`,
			wantParams: []any{true, 21, "admin", 10, 20},
		},
		{
			name:    "mysql placeholders",
			dialect: sqlgen.MySQL,
			query: ast.SelectQuery{
				Clauses: ast.Clauses{Table: "users", Where: where(cmp("id", ast.OpIn, []any{1, 2}, ast.And)), Limit: &ast.Limit{Count: 1}},
			},
			wantSQL:    "SELECT * FROM `users` WHERE `id` IN (?, ?) LIMIT ?",
			wantParams: []any{1, 2, 1},
		},
		{
			name:       "sqlite offset without limit",
			dialect:    sqlgen.SQLite,
			query:      ast.SelectQuery{Clauses: ast.Clauses{Table: "users", Offset: &ast.Offset{Count: 5}}},
			wantSQL:    `SELECT * FROM "users" LIMIT -1 OFFSET ?`,
			wantParams: []any{5},
		},
		{
			name:       "mysql offset without limit",
			dialect:    sqlgen.MySQL,
			query:      ast.SelectQuery{Clauses: ast.Clauses{Table: "users", Offset: &ast.Offset{Count: 5}}},
			wantSQL:    "SELECT * FROM `users` LIMIT 18446744073709551615 OFFSET ?",
			wantParams: []any{5},
		},
		{
			name:       "mysql limit and offset",
			dialect:    sqlgen.MySQL,
			query:      ast.SelectQuery{Clauses: ast.Clauses{Table: "users", Limit: &ast.Limit{Count: 10}, Offset: &ast.Offset{Count: 5}}},
			wantSQL:    "SELECT * FROM `users` LIMIT ? OFFSET ?",
			wantParams: []any{10, 5},
		},
		{
			name:       "postgres offset without limit",
			dialect:    sqlgen.Postgres,
			query:      ast.SelectQuery{Clauses: ast.Clauses{Table: "users", Offset: &ast.Offset{Count: 5}}},
			wantSQL:    `SELECT * FROM "users" OFFSET $1`,
			wantParams: []any{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compile(t, tt.dialect, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, got.SQL)
			assert.Equal(t, tt.wantParams, got.Params)
		})
	}
}

func TestInsertCompiler(t *testing.T) {
	q := ast.InsertQuery{
		Clauses: ast.Clauses{Table: "users", Returning: []ast.ColumnRef{{Name: "id"}}},
		Values:  ast.Values{{Column: "name", Value: "Bob"}, {Column: "age", Value: 30}},
	}

	got, err := compile(t, sqlgen.Postgres, q)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name", "age") VALUES ($1, $2) RETURNING "id"`, got.SQL)
	assert.Equal(t, []any{"Bob", 30}, got.Params)

	q.Returning = nil
	got, err = compile(t, sqlgen.MySQL, q)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`name`, `age`) VALUES (?, ?)", got.SQL)
}

func TestUpdateCompiler(t *testing.T) {
	q := ast.UpdateQuery{
		Clauses: ast.Clauses{
			Table:     "users",
			Where:     where(cmp("id", ast.OpEqual, 7, ast.And)),
			Returning: []ast.ColumnRef{{Name: "id"}, {Name: "name"}},
		},
		Values: ast.Values{{Column: "name", Value: "Bob"}, {Column: "age", Value: 30}},
	}

	got, err := compile(t, sqlgen.Postgres, q)
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "name" = $1, "age" = $2 WHERE "id" = $3 RETURNING "id", "name"`, got.SQL)
	assert.Equal(t, []any{"Bob", 30, 7}, got.Params)
}

func TestDeleteCompiler(t *testing.T) {
	q := ast.DeleteQuery{Clauses: ast.Clauses{
		Table: "users",
		Where: where(cmp("id", ast.OpIn, []any{1, 2}, ast.And)),
	}}

	got, err := compile(t, sqlgen.SQLite, q)
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users" WHERE "id" IN (?, ?)`, got.SQL)
	assert.Equal(t, []any{1, 2}, got.Params)
}

func TestStatementCompiler_KindMismatch(t *testing.T) {
	shared := sqlgen.NewShared(sqlgen.Postgres)
	for _, c := range sqlgen.NewStatementCompilers(shared) {
		var other ast.Query = ast.SelectQuery{Clauses: ast.Clauses{Table: "t"}}
		if c.Kind() == ast.KindSelect {
			other = ast.DeleteQuery{Clauses: ast.Clauses{Table: "t"}}
		}
		_, err := c.Compile(other)
		assert.ErrorIs(t, err, ast.ErrUnsupportedQueryKind, c.Kind())
	}
}

func TestMySQL_UnsupportedClauses(t *testing.T) {
	_, err := compile(t, sqlgen.MySQL, ast.DeleteQuery{Clauses: ast.Clauses{
		Table:     "users",
		Returning: []ast.ColumnRef{{Name: "id"}},
	}})
	require.ErrorIs(t, err, ast.ErrUnsupportedClause)

	var clauseErr *sqlgen.ClauseError
	require.ErrorAs(t, err, &clauseErr)
	assert.Equal(t, "RETURNING", clauseErr.Clause)

	_, err = compile(t, sqlgen.MySQL, ast.SelectQuery{Clauses: ast.Clauses{
		Table: "users",
		Joins: []ast.JoinEntry{{Kind: ast.JoinFull, Table: "posts", On: *where(cmp("a", ast.OpEqual, 1, ast.And))}},
	}})
	assert.ErrorIs(t, err, ast.ErrUnsupportedClause)
}

func TestInsertCompiler_RequiresValues(t *testing.T) {
	_, err := compile(t, sqlgen.Postgres, ast.InsertQuery{Clauses: ast.Clauses{Table: "users"}})
	assert.ErrorIs(t, err, ast.ErrValidation)
}
