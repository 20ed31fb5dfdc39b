package document_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/compiler"
	"github.com/satishbabariya/sqlkit/query/document"
	"github.com/satishbabariya/sqlkit/query/sqlgen"
)

const queries = `
name: adults
kind: select
table: users
columns: [id, name AS n]
joins:
  - kind: left
    table: posts
    alias: p
    on: users.id = @p.user_id
where: age >= 18 AND (role = 'admin' OR vip = true)
group_by: [users.id]
order_by:
  - column: name
  - column: age
    direction: desc
limit: 10
offset: 5
---
kind: insert
table: users
values:
  name: Ada
  age: 36
  email: ada@example.com
returning: [id]
---
kind: update
table: users
values:
  name: Grace
where: id = 1
---
kind: delete
table: users
where: id IN (1, 2)
`

func TestParse(t *testing.T) {
	docs, err := document.Parse([]byte(queries))
	require.NoError(t, err)
	require.Len(t, docs, 4)

	assert.Equal(t, "adults", docs[0].Name)
	assert.Equal(t, "SELECT", docs[0].Kind)
	assert.Equal(t, 10, *docs[0].Limit)
	assert.Equal(t, []string{"name", "age", "email"}, ast.Values(docs[1].Values).Columns())
}

func TestQuery_Compile(t *testing.T) {
	docs, err := document.Parse([]byte(queries))
	require.NoError(t, err)

	comp := compiler.NewCompiler(sqlgen.Postgres)
	want := []sqlgen.CompiledQuery{
		{
			SQL: `SELECT "users"."id", "users"."name" AS "n" FROM "users" ` +
				`LEFT JOIN "posts" AS "p" ON "users"."id" = "p"."user_id" ` +
				`WHERE ("age" >= $1 AND ("role" = $2 OR "vip" = $3)) ` +
				`GROUP BY "users"."id" ORDER BY "name" ASC, "age" DESC LIMIT $4 OFFSET $5`,
			Params: []any{18, "admin", true, 10, 5},
		},
		{
			SQL:    `INSERT INTO "users" ("name", "age", "email") VALUES ($1, $2, $3) RETURNING "id"`,
			Params: []any{"Ada", 36, "ada@example.com"},
		},
		{
			SQL:    `UPDATE "users" SET "name" = $1 WHERE "id" = $2`,
			Params: []any{"Grace", 1},
		},
		{
			SQL:    `DELETE FROM "users" WHERE "id" IN ($1, $2)`,
			Params: []any{1, 2},
		},
	}

	for i, d := range docs {
		q, err := d.Query()
		require.NoError(t, err)
		got, err := comp.Compile(q)
		require.NoError(t, err)
		assert.Equal(t, want[i], got)
	}
}

func TestQuery_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown kind":  "kind: merge\ntable: users\n",
		"bad where":     "kind: select\ntable: users\nwhere: age >\n",
		"negative":      "kind: select\ntable: users\nlimit: -1\n",
		"missing table": "kind: delete\n",
		"bad join kind": "kind: select\ntable: u\njoins:\n  - kind: cross\n    table: p\n    on: a = 1\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			docs, err := document.Parse([]byte(src))
			require.NoError(t, err)
			_, err = docs[0].Query()
			assert.Error(t, err)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := document.Parse([]byte("kind: select\ntable: users\nwehre: a = 1\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/q/users.yaml", []byte(queries), 0o644))

	docs, err := document.LoadFile(fs, "/q/users.yaml")
	require.NoError(t, err)
	assert.Len(t, docs, 4)

	_, err = document.LoadFile(fs, "/q/missing.yaml")
	assert.Error(t, err)
}

func TestEncode_KeepsValueOrder(t *testing.T) {
	var buf bytes.Buffer
	err := document.Encode(&buf, document.Document{
		Kind:   "INSERT",
		Table:  "users",
		Values: document.Values{{Column: "z", Value: 1}, {Column: "a", Value: "x"}},
	})
	require.NoError(t, err)

	docs, err := document.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"z", "a"}, ast.Values(docs[0].Values).Columns())
}
