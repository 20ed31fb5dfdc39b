// Package sqlgen renders query descriptions into parameterized SQL for
// PostgreSQL, MySQL and SQLite.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlkit/query/ast"
)

// CompiledQuery is SQL text plus the values bound to its placeholders, in
// the order the placeholders appear.
type CompiledQuery struct {
	SQL    string
	Params []any
}

// Dialect describes the engine-specific parts of SQL generation.
type Dialect struct {
	Name string
	// Quote wraps identifiers; embedded quotes are doubled.
	Quote string
	// NewParams creates a fresh placeholder generator.
	NewParams func() ParameterManager
	// SupportsReturning reports whether RETURNING may be emitted.
	SupportsReturning bool
	// SupportsFullJoin reports whether FULL JOIN may be emitted.
	SupportsFullJoin bool
	// OffsetWithoutLimit is emitted before OFFSET when no LIMIT is set, for
	// engines that reject a bare OFFSET.
	OffsetWithoutLimit string
}

var (
	// Postgres uses "$n" placeholders and double-quoted identifiers.
	Postgres = Dialect{
		Name:              "postgres",
		Quote:             `"`,
		NewParams:         func() ParameterManager { return NewNumberedParams("$") },
		SupportsReturning: true,
		SupportsFullJoin:  true,
	}

	// MySQL uses "?" placeholders and backtick-quoted identifiers.
	MySQL = Dialect{
		Name:               "mysql",
		Quote:              "`",
		NewParams:          func() ParameterManager { return NewPositionalParams("?") },
		OffsetWithoutLimit: "LIMIT 18446744073709551615",
	}

	// SQLite uses "?" placeholders and double-quoted identifiers.
	SQLite = Dialect{
		Name:               "sqlite",
		Quote:              `"`,
		NewParams:          func() ParameterManager { return NewPositionalParams("?") },
		SupportsReturning:  true,
		SupportsFullJoin:   true,
		OffsetWithoutLimit: "LIMIT -1",
	}
)

// DialectFor returns the dialect for a provider name.
func DialectFor(provider string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "postgresql", "postgres", "pg":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unknown dialect %q", provider)
}

// ClauseError reports which clause failed to render.
type ClauseError struct {
	Clause string
	Err    error
}

func (e *ClauseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Clause, e.Err)
}

func (e *ClauseError) Unwrap() error { return e.Err }

func clauseError(clause string, err error) error {
	if err == nil {
		return nil
	}
	return &ClauseError{Clause: clause, Err: err}
}

func unsupportedClause(d Dialect, clause string) error {
	return clauseError(clause, fmt.Errorf("%w: %s does not support %s", ast.ErrUnsupportedClause, d.Name, clause))
}
