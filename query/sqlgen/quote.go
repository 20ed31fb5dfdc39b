package sqlgen

import (
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// Quoter escapes identifiers for one dialect. It never renders values.
type Quoter struct {
	quote string
}

// NewQuoter creates a Quoter wrapping identifiers in quote.
func NewQuoter(quote string) Quoter {
	return Quoter{quote: quote}
}

// EscapeIdentifier wraps name in quotes, doubling embedded quote characters.
// A bare "*" is returned unquoted.
func (q Quoter) EscapeIdentifier(name string) string {
	if name == "*" {
		return name
	}
	return q.quote + strings.ReplaceAll(name, q.quote, q.quote+q.quote) + q.quote
}

// EscapeColumn renders a column reference including its alias.
func (q Quoter) EscapeColumn(col ast.ColumnRef) string {
	out := q.EscapeColumnName(col)
	if col.Alias != "" {
		out += " AS " + q.EscapeIdentifier(col.Alias)
	}
	return out
}

// EscapeColumnName renders a column reference without its alias. A dotted
// name is split and each part escaped; otherwise Table qualifies the name.
func (q Quoter) EscapeColumnName(col ast.ColumnRef) string {
	if strings.Contains(col.Name, ".") {
		return q.escapeDotted(col.Name)
	}
	if col.Table != "" {
		return q.escapeDotted(col.Table) + "." + q.EscapeIdentifier(col.Name)
	}
	return q.EscapeIdentifier(col.Name)
}

// EscapeTable renders a possibly schema-qualified table name.
func (q Quoter) EscapeTable(table string) string {
	return q.escapeDotted(table)
}

func (q Quoter) escapeDotted(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = q.EscapeIdentifier(p)
	}
	return strings.Join(parts, ".")
}
