package metadata_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlkit/runtime/metadata"
)

func userEntity() metadata.EntityMetadata {
	return metadata.EntityMetadata{
		Name:  "User",
		Table: "users",
		Columns: []metadata.ColumnMetadata{
			{Property: "ID", Name: "id", Type: "int"},
			{Property: "Name", Name: "user_name"},
			{Property: "age"},
		},
		PrimaryKeys: []string{"ID"},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := metadata.NewRegistry()
	require.NoError(t, reg.Register(userEntity()))

	e, err := reg.Lookup("User")
	require.NoError(t, err)
	assert.Equal(t, "users", e.Table)

	col, ok := e.Column("age")
	require.True(t, ok)
	assert.Equal(t, "age", col.Name, "column name defaults to the property")

	assert.True(t, e.IsPrimaryKey("ID"))
	assert.False(t, e.IsPrimaryKey("Name"))
}

func TestRegistry_Missing(t *testing.T) {
	reg := metadata.NewRegistry()
	_, err := reg.Lookup("Ghost")
	assert.ErrorIs(t, err, metadata.ErrMissingEntityMetadata)

	err = reg.AddRelation("Ghost", metadata.RelationMetadata{Property: "Posts", Target: "Post"})
	assert.ErrorIs(t, err, metadata.ErrMissingEntityMetadata)
}

func TestRegistry_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*metadata.EntityMetadata)
	}{
		{"empty name", func(e *metadata.EntityMetadata) { e.Name = "" }},
		{"empty table", func(e *metadata.EntityMetadata) { e.Table = "" }},
		{"unnamed column", func(e *metadata.EntityMetadata) {
			e.Columns = append(e.Columns, metadata.ColumnMetadata{Name: "x"})
		}},
		{"duplicate column", func(e *metadata.EntityMetadata) {
			e.Columns = append(e.Columns, metadata.ColumnMetadata{Property: "ID"})
		}},
		{"unknown primary key", func(e *metadata.EntityMetadata) { e.PrimaryKeys = []string{"UUID"} }},
		{"relation without target", func(e *metadata.EntityMetadata) {
			e.Relations = []metadata.RelationMetadata{{Property: "Posts"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := userEntity()
			tt.mutate(&e)
			err := metadata.NewRegistry().Register(e)
			assert.ErrorIs(t, err, metadata.ErrInvalidMetadata)
		})
	}
}

func TestRegistry_AddRelation(t *testing.T) {
	reg := metadata.NewRegistry()
	require.NoError(t, reg.Register(userEntity()))
	require.NoError(t, reg.AddRelation("User", metadata.RelationMetadata{
		Type:     metadata.OneToMany,
		Property: "Posts",
		Target:   "Post",
		FKColumn: "user_id",
	}))

	e, err := reg.Lookup("User")
	require.NoError(t, err)
	require.Len(t, e.Relations, 1)
	assert.Equal(t, metadata.OneToMany, e.Relations[0].Type)
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := metadata.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, reg.Register(userEntity()))
			_, err := reg.Lookup("User")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"User"}, reg.Names())
}
