package compiler

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/sqlkit/query/ast"
)

var (
	ErrUnsupportedQuery  = ast.ErrUnsupportedQueryKind
	ErrInvalidQuery      = errors.New("invalid query")
	ErrCompilationFailed = errors.New("query compilation failed")
)

// CompileError attaches the statement kind, dialect and failing clause to a
// compilation error.
type CompileError struct {
	Kind    ast.QueryKind
	Dialect string
	Clause  string
	Err     error
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("compile %s (%s)", e.Kind, e.Dialect)
	if e.Clause != "" {
		msg += " " + e.Clause
	}
	return msg + ": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }
