// Package ast defines the immutable query descriptions produced by the
// builders and consumed by the dialect compilers.
package ast

// QueryKind tags a query description with its statement kind.
type QueryKind string

const (
	KindSelect QueryKind = "SELECT"
	KindInsert QueryKind = "INSERT"
	KindUpdate QueryKind = "UPDATE"
	KindDelete QueryKind = "DELETE"
)

// Query is a built statement description.
type Query interface {
	Kind() QueryKind
	Base() Clauses
}

// Clauses holds the fields shared by every statement kind.
// Where is nil when no condition was added.
type Clauses struct {
	Table     string
	Where     *ConditionGroup
	Joins     []JoinEntry
	GroupBy   []ColumnRef
	OrderBy   []OrderEntry
	Limit     *Limit
	Offset    *Offset
	Returning []ColumnRef
}

// Base returns the shared clause bundle.
func (c Clauses) Base() Clauses { return c }

// SelectQuery describes a SELECT statement. An empty Columns list selects
// every column.
type SelectQuery struct {
	Clauses
	Columns []ColumnRef
}

func (q SelectQuery) Kind() QueryKind { return KindSelect }

// InsertQuery describes an INSERT statement.
type InsertQuery struct {
	Clauses
	Values Values
}

func (q InsertQuery) Kind() QueryKind { return KindInsert }

// UpdateQuery describes an UPDATE statement.
type UpdateQuery struct {
	Clauses
	Values Values
}

func (q UpdateQuery) Kind() QueryKind { return KindUpdate }

// DeleteQuery describes a DELETE statement.
type DeleteQuery struct {
	Clauses
}

func (q DeleteQuery) Kind() QueryKind { return KindDelete }

// Clone returns a deep copy of the clause bundle.
func (c Clauses) Clone() Clauses {
	out := Clauses{
		Table:     c.Table,
		GroupBy:   cloneColumns(c.GroupBy),
		Returning: cloneColumns(c.Returning),
	}
	if c.Where != nil {
		w := c.Where.Clone()
		out.Where = &w
	}
	if c.Joins != nil {
		out.Joins = make([]JoinEntry, len(c.Joins))
		for i, j := range c.Joins {
			j.On = j.On.Clone()
			out.Joins[i] = j
		}
	}
	if c.OrderBy != nil {
		out.OrderBy = append([]OrderEntry(nil), c.OrderBy...)
	}
	if c.Limit != nil {
		l := *c.Limit
		out.Limit = &l
	}
	if c.Offset != nil {
		o := *c.Offset
		out.Offset = &o
	}
	return out
}

func cloneColumns(cols []ColumnRef) []ColumnRef {
	if cols == nil {
		return nil
	}
	return append([]ColumnRef(nil), cols...)
}
