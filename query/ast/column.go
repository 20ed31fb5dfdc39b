package ast

import (
	"regexp"
	"strings"
)

var aliasSep = regexp.MustCompile(`(?i)(?:^|\s+)AS(?:\s+|$)`)

// ColumnRef names a column with an optional owning table and output alias.
type ColumnRef struct {
	Name  string
	Table string
	Alias string
}

// Wildcard selects every column.
var Wildcard = ColumnRef{Name: "*"}

// ParseColumn parses "name" or "name AS alias" into a ColumnRef.
func ParseColumn(expr string) (ColumnRef, error) {
	name, alias, hasAlias := splitAlias(expr)
	if name == "" {
		return ColumnRef{}, NewValidationError("column", "column name must not be empty", expr)
	}
	if hasAlias && alias == "" {
		return ColumnRef{}, NewValidationError("column", "alias after AS must not be empty", expr)
	}
	return ColumnRef{Name: name, Alias: alias}, nil
}

// IsWildcard reports whether the reference selects every column.
func (c ColumnRef) IsWildcard() bool { return c.Name == "*" && c.Table == "" }

// String renders the reference unquoted, for diagnostics.
func (c ColumnRef) String() string {
	s := c.Name
	if c.Table != "" && !strings.Contains(c.Name, ".") {
		s = c.Table + "." + s
	}
	if c.Alias != "" {
		s += " AS " + c.Alias
	}
	return s
}

// splitAlias splits at the first standalone AS. The separator is matched
// before trimming so " AS x" yields an empty name.
func splitAlias(expr string) (name, alias string, ok bool) {
	loc := aliasSep.FindStringIndex(expr)
	if loc == nil {
		return strings.TrimSpace(expr), "", false
	}
	return strings.TrimSpace(expr[:loc[0]]), strings.TrimSpace(expr[loc[1]:]), true
}
