package ast_test

import (
	"errors"
	"testing"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.ColumnRef
	}{
		{name: "plain", input: "id", want: ast.ColumnRef{Name: "id"}},
		{name: "alias", input: "name AS n", want: ast.ColumnRef{Name: "name", Alias: "n"}},
		{name: "lowercase alias", input: "users.name as user_name", want: ast.ColumnRef{Name: "users.name", Alias: "user_name"}},
		{name: "surrounding space", input: "  email  ", want: ast.ColumnRef{Name: "email"}},
		{name: "as inside names", input: "alias as assets", want: ast.ColumnRef{Name: "alias", Alias: "assets"}},
		{name: "extra spacing", input: "price\tAS   p ", want: ast.ColumnRef{Name: "price", Alias: "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ast.ParseColumn(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColumn_EmptyName(t *testing.T) {
	for _, input := range []string{"", "   ", " AS alias", "AS alias", "  as x"} {
		_, err := ast.ParseColumn(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ast.ErrValidation))

		var verr *ast.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "column", verr.Field)
	}
}

func TestParseColumn_EmptyAlias(t *testing.T) {
	for _, input := range []string{"id AS ", "id as", "id AS\t"} {
		_, err := ast.ParseColumn(input)
		assert.ErrorIs(t, err, ast.ErrValidation, input)
	}
}

func TestParseComparisonOperator(t *testing.T) {
	tests := map[string]ast.ComparisonOperator{
		"=":       ast.OpEqual,
		"!=":      ast.OpNotEqual,
		"<>":      ast.OpNotEqual,
		"in":      ast.OpIn,
		"not  in": ast.OpNotIn,
		">=":      ast.OpGreaterOrEqual,
	}
	for input, want := range tests {
		got, err := ast.ParseComparisonOperator(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ast.ParseComparisonOperator("LIKE")
	assert.ErrorIs(t, err, ast.ErrValidation)
	assert.True(t, ast.OpNotIn.TakesList())
	assert.False(t, ast.OpEqual.TakesList())
}

func TestParseLogicalOperator(t *testing.T) {
	got, err := ast.ParseLogicalOperator("or not")
	require.NoError(t, err)
	assert.Equal(t, ast.OrNot, got)

	_, err = ast.ParseLogicalOperator("XOR")
	assert.ErrorIs(t, err, ast.ErrValidation)
}

func TestParseOrderDirection(t *testing.T) {
	d, err := ast.ParseOrderDirection("")
	require.NoError(t, err)
	assert.Equal(t, ast.Asc, d)

	d, err = ast.ParseOrderDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, ast.Desc, d)

	_, err = ast.ParseOrderDirection("UP")
	assert.ErrorIs(t, err, ast.ErrValidation)
}

func TestParseJoinKind(t *testing.T) {
	k, err := ast.ParseJoinKind("left join")
	require.NoError(t, err)
	assert.Equal(t, ast.JoinLeft, k)

	k, err = ast.ParseJoinKind("")
	require.NoError(t, err)
	assert.Equal(t, ast.JoinInner, k)

	_, err = ast.ParseJoinKind("CROSS")
	assert.ErrorIs(t, err, ast.ErrValidation)
}

func TestConditionGroup_CloneIsIndependent(t *testing.T) {
	inner := ast.ConditionGroup{
		Connector: ast.Or,
		Conditions: []ast.ConditionNode{
			ast.Comparison{Left: ast.ColumnRef{Name: "a"}, Operator: ast.OpEqual, Right: 1},
		},
	}
	group := ast.ConditionGroup{
		Connector: ast.And,
		Conditions: []ast.ConditionNode{
			ast.Comparison{Left: ast.ColumnRef{Name: "id"}, Operator: ast.OpIn, Right: []any{1, 2}},
			inner,
		},
	}

	clone := group.Clone()
	group.Conditions[0].(ast.Comparison).Right.([]any)[0] = 99
	group.Conditions[1] = ast.Comparison{Left: ast.ColumnRef{Name: "z"}}

	assert.Equal(t, []any{1, 2}, clone.Conditions[0].(ast.Comparison).Right)
	assert.Equal(t, inner, clone.Conditions[1])
	assert.Equal(t, 2, clone.Len())
}

func TestValuesFromMap_SortsKeys(t *testing.T) {
	v := ast.ValuesFromMap(map[string]any{"name": "x", "age": 3, "email": "e"})
	assert.Equal(t, []string{"age", "email", "name"}, v.Columns())

	got, ok := v.Get("email")
	assert.True(t, ok)
	assert.Equal(t, "e", got)

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestToList(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   []any
		isList bool
	}{
		{name: "any slice", input: []any{1, "a"}, want: []any{1, "a"}, isList: true},
		{name: "typed slice", input: []int{1, 2}, want: []any{1, 2}, isList: true},
		{name: "array", input: [2]string{"a", "b"}, want: []any{"a", "b"}, isList: true},
		{name: "empty typed slice", input: []int64{}, want: []any{}, isList: true},
		{name: "scalar", input: 5},
		{name: "string", input: "a,b"},
		{name: "bytes", input: []byte("ab")},
		{name: "nil", input: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ast.ToList(tt.input)
			assert.Equal(t, tt.isList, ok)
			if tt.isList {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestQueryKinds(t *testing.T) {
	queries := map[ast.QueryKind]ast.Query{
		ast.KindSelect: ast.SelectQuery{Clauses: ast.Clauses{Table: "users"}},
		ast.KindInsert: ast.InsertQuery{Clauses: ast.Clauses{Table: "users"}},
		ast.KindUpdate: ast.UpdateQuery{Clauses: ast.Clauses{Table: "users"}},
		ast.KindDelete: ast.DeleteQuery{Clauses: ast.Clauses{Table: "users"}},
	}
	for kind, q := range queries {
		assert.Equal(t, kind, q.Kind())
		assert.Equal(t, "users", q.Base().Table)
	}
}
