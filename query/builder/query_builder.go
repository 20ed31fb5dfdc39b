package builder

// QueryBuilder is a stateless factory for statement builders.
type QueryBuilder struct{}

// New creates a QueryBuilder
func New() QueryBuilder {
	return QueryBuilder{}
}

// Select returns a fresh SELECT builder. Columns, when given, are applied
// with SelectBuilder.Select.
func (QueryBuilder) Select(columns ...string) *SelectBuilder {
	s := NewSelectBuilder()
	if len(columns) > 0 {
		s.Select(columns...)
	}
	return s
}

// Insert returns a fresh INSERT builder
func (QueryBuilder) Insert() *InsertBuilder {
	return NewInsertBuilder()
}

// Update returns a fresh UPDATE builder
func (QueryBuilder) Update() *UpdateBuilder {
	return NewUpdateBuilder()
}

// Delete returns a fresh DELETE builder
func (QueryBuilder) Delete() *DeleteBuilder {
	return NewDeleteBuilder()
}

// FindOne returns a SELECT of every column filtered by where and limited to
// one row. The caller sets the table with From.
func (QueryBuilder) FindOne(where func(*WhereBuilder)) *SelectBuilder {
	return NewSelectBuilder().Select().Where(where).Limit(1)
}

// FindAll returns a SELECT of every column filtered by where.
func (QueryBuilder) FindAll(where func(*WhereBuilder)) *SelectBuilder {
	return NewSelectBuilder().Select().Where(where)
}
