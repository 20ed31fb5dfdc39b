package sqlgen_test

import (
	"strings"
	"testing"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/sqlgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	numbered := sqlgen.NewNumberedParams("$")
	assert.Equal(t, "$1", numbered.Next())
	assert.Equal(t, "$2", numbered.Next())
	assert.Equal(t, 2, numbered.Count())
	numbered.Reset()
	assert.Equal(t, "$1", numbered.Next())

	positional := sqlgen.NewPositionalParams("?")
	assert.Equal(t, "?", positional.Next())
	assert.Equal(t, "?", positional.Next())
	assert.Equal(t, 2, positional.Count())
	positional.Reset()
	assert.Equal(t, 0, positional.Count())
}

func TestQuoter(t *testing.T) {
	pg := sqlgen.NewQuoter(`"`)
	my := sqlgen.NewQuoter("`")

	tests := []struct {
		name   string
		quoter sqlgen.Quoter
		col    ast.ColumnRef
		want   string
	}{
		{name: "plain", quoter: pg, col: ast.ColumnRef{Name: "id"}, want: `"id"`},
		{name: "embedded quote", quoter: pg, col: ast.ColumnRef{Name: `we"ird`}, want: `"we""ird"`},
		{name: "dotted", quoter: pg, col: ast.ColumnRef{Name: "users.id"}, want: `"users"."id"`},
		{name: "dotted alias", quoter: pg, col: ast.ColumnRef{Name: "users.id", Alias: "uid"}, want: `"users"."id" AS "uid"`},
		{name: "table qualified", quoter: pg, col: ast.ColumnRef{Name: "id", Table: "users"}, want: `"users"."id"`},
		{name: "alias", quoter: pg, col: ast.ColumnRef{Name: "name", Alias: "n"}, want: `"name" AS "n"`},
		{name: "wildcard", quoter: pg, col: ast.Wildcard, want: `*`},
		{name: "mysql backtick", quoter: my, col: ast.ColumnRef{Name: "a`b", Table: "t"}, want: "`t`.`a``b`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.quoter.EscapeColumn(tt.col))
		})
	}

	assert.Equal(t, `"public"."users"`, pg.EscapeTable("public.users"))
}

func TestDialectFor(t *testing.T) {
	for provider, want := range map[string]string{
		"postgresql": "postgres",
		"Postgres":   "postgres",
		"mysql":      "mysql",
		"sqlite3":    "sqlite",
	} {
		d, err := sqlgen.DialectFor(provider)
		require.NoError(t, err)
		assert.Equal(t, want, d.Name)
	}

	_, err := sqlgen.DialectFor("oracle")
	assert.Error(t, err)
}

func newConditionCompiler() *sqlgen.ConditionCompiler {
	return sqlgen.NewConditionCompiler(sqlgen.NewNumberedParams("$"), sqlgen.NewQuoter(`"`))
}

func cmp(col string, op ast.ComparisonOperator, right any, conn ast.LogicalOperator) ast.Comparison {
	return ast.Comparison{Left: ast.ColumnRef{Name: col}, Operator: op, Right: right, Connector: conn}
}

func TestConditionCompiler_Comparison(t *testing.T) {
	c := newConditionCompiler()

	got, err := c.Compile(cmp("age", ast.OpGreaterThan, 18, ast.And))
	require.NoError(t, err)
	assert.Equal(t, `"age" > $1`, got.SQL)
	assert.Equal(t, []any{18}, got.Params)

	got, err = c.Compile(cmp("id", ast.OpIn, []any{1, 2, 3}, ast.And))
	require.NoError(t, err)
	assert.Equal(t, `"id" IN ($2, $3, $4)`, got.SQL)
	assert.Equal(t, []any{1, 2, 3}, got.Params)
}

func TestConditionCompiler_TypedSlices(t *testing.T) {
	c := newConditionCompiler()

	got, err := c.Compile(cmp("id", ast.OpIn, []int{1, 2}, ast.And))
	require.NoError(t, err)
	assert.Equal(t, `"id" IN ($1, $2)`, got.SQL)
	assert.Equal(t, []any{1, 2}, got.Params)

	got, err = c.Compile(cmp("role", ast.OpNotIn, [2]string{"admin", "owner"}, ast.And))
	require.NoError(t, err)
	assert.Equal(t, `"role" NOT IN ($3, $4)`, got.SQL)
	assert.Equal(t, []any{"admin", "owner"}, got.Params)
}

func TestConditionCompiler_ListOperatorNeedsList(t *testing.T) {
	tests := map[string]ast.Comparison{
		"scalar":             cmp("id", ast.OpIn, 5, ast.And),
		"string":             cmp("id", ast.OpNotIn, "1,2", ast.And),
		"nil":                cmp("id", ast.OpIn, nil, ast.And),
		"empty typed slice":  cmp("id", ast.OpIn, []int{}, ast.And),
		"empty column slice": {Left: ast.ColumnRef{Name: "a"}, Operator: ast.OpIn, Right: []ast.ColumnRef{}, IsColumnComparison: true},
	}

	for name, comparison := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := newConditionCompiler().Compile(comparison)
			assert.ErrorIs(t, err, ast.ErrValidation)
			assert.Empty(t, got.SQL)
		})
	}
}

func TestConditionCompiler_ColumnComparison(t *testing.T) {
	c := newConditionCompiler()

	got, err := c.Compile(ast.Comparison{
		Left:               ast.ColumnRef{Name: "users.id"},
		Operator:           ast.OpEqual,
		Right:              ast.ColumnRef{Name: "posts.user_id"},
		IsColumnComparison: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `"users"."id" = "posts"."user_id"`, got.SQL)
	assert.Empty(t, got.Params)

	got, err = c.Compile(ast.Comparison{
		Left:               ast.ColumnRef{Name: "a"},
		Operator:           ast.OpIn,
		Right:              []ast.ColumnRef{{Name: "b"}, {Name: "c"}},
		IsColumnComparison: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `"a" IN ("b", "c")`, got.SQL)
	assert.Empty(t, got.Params)
}

func TestConditionCompiler_EmptyGroup(t *testing.T) {
	got, err := newConditionCompiler().Compile(ast.ConditionGroup{})
	require.NoError(t, err)
	assert.Equal(t, "()", got.SQL)
	assert.Empty(t, got.Params)
}

func TestConditionCompiler_NestedGroups(t *testing.T) {
	tree := ast.ConditionGroup{
		Connector: ast.And,
		Conditions: []ast.ConditionNode{
			cmp("age", ast.OpGreaterThan, 18, ast.And),
			ast.ConditionGroup{
				Connector: ast.Or,
				Conditions: []ast.ConditionNode{
					cmp("a", ast.OpEqual, 1, ast.And),
					cmp("b", ast.OpEqual, 2, ast.Or),
				},
			},
			cmp("c", ast.OpNotEqual, 3, ast.AndNot),
			cmp("d", ast.OpLessOrEqual, 4, ""),
		},
	}

	got, err := newConditionCompiler().Compile(tree)
	require.NoError(t, err)
	assert.Equal(t, `("age" > $1 OR ("a" = $2 OR "b" = $3) AND NOT "c" <> $4 AND "d" <= $5)`, got.SQL)
	assert.Equal(t, []any{18, 1, 2, 3, 4}, got.Params)
	assert.Equal(t, len(got.Params), strings.Count(got.SQL, "$"))
}

func TestConditionCompiler_FirstConnectorIgnored(t *testing.T) {
	tree := ast.ConditionGroup{Conditions: []ast.ConditionNode{
		cmp("a", ast.OpEqual, 1, ast.OrNot),
		cmp("b", ast.OpEqual, 2, ast.Or),
	}}
	got, err := newConditionCompiler().Compile(tree)
	require.NoError(t, err)
	assert.Equal(t, `("a" = $1 OR "b" = $2)`, got.SQL)
}

func TestConditionCompiler_Errors(t *testing.T) {
	c := newConditionCompiler()

	_, err := c.Compile(cmp("id", ast.OpIn, []any{}, ast.And))
	assert.ErrorIs(t, err, ast.ErrValidation)

	_, err = c.Compile(cmp("", ast.OpEqual, 1, ast.And))
	assert.ErrorIs(t, err, ast.ErrValidation)

	_, err = c.Compile(nil)
	assert.Error(t, err)
}
