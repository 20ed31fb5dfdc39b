// Package compiler turns query descriptions into dialect-specific SQL.
package compiler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/sqlgen"
)

// Compiler is the per-dialect entry point. It owns one ParameterManager
// shared by its statement compilers, so calls on one Compiler are
// serialized; use one Compiler per goroutine for parallel compilation.
type Compiler struct {
	mu        sync.Mutex
	shared    *sqlgen.Shared
	compilers map[ast.QueryKind]sqlgen.StatementCompiler
}

// NewCompiler creates a new query compiler for d
func NewCompiler(d sqlgen.Dialect) *Compiler {
	shared := sqlgen.NewShared(d)
	c := &Compiler{
		shared:    shared,
		compilers: make(map[ast.QueryKind]sqlgen.StatementCompiler),
	}
	for _, sc := range sqlgen.NewStatementCompilers(shared) {
		c.compilers[sc.Kind()] = sc
	}
	return c
}

// New creates a compiler for a provider name such as "postgres".
func New(provider string) (*Compiler, error) {
	d, err := sqlgen.DialectFor(provider)
	if err != nil {
		return nil, err
	}
	return NewCompiler(d), nil
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() sqlgen.Dialect {
	return c.shared.Dialect
}

// Compile renders q. Placeholder numbering restarts on every call.
func (c *Compiler) Compile(q ast.Query) (result sqlgen.CompiledQuery, err error) {
	if q == nil {
		return sqlgen.CompiledQuery{}, fmt.Errorf("%w: nil query", ErrInvalidQuery)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dialect := c.shared.Dialect.Name
	start := time.Now()
	var kind ast.QueryKind

	defer func() {
		if r := recover(); r != nil {
			result = sqlgen.CompiledQuery{}
			err = &CompileError{Kind: kind, Dialect: dialect, Err: fmt.Errorf("%w: %v", ErrCompilationFailed, r)}
		}
		if err != nil {
			debug.Error("query compilation failed", "kind", kind, "dialect", dialect, "error", err)
		}
	}()

	kind = q.Kind()
	c.shared.Params.Reset()

	sc, ok := c.compilers[kind]
	if !ok {
		return sqlgen.CompiledQuery{}, &CompileError{
			Kind:    kind,
			Dialect: dialect,
			Err:     fmt.Errorf("%w: %s", ErrUnsupportedQuery, kind),
		}
	}

	result, err = sc.Compile(q)
	if err != nil {
		ce := &CompileError{Kind: kind, Dialect: dialect, Err: err}
		var clauseErr *sqlgen.ClauseError
		if errors.As(err, &clauseErr) {
			ce.Clause = clauseErr.Clause
			ce.Err = clauseErr.Err
		}
		return sqlgen.CompiledQuery{}, ce
	}

	debug.Debug("query compiled",
		"kind", kind,
		"dialect", dialect,
		"params", len(result.Params),
		"duration", time.Since(start),
	)
	return result, nil
}

// Builder is any statement builder.
type Builder[Q ast.Query] interface {
	Build() (Q, error)
}

// CompileBuilder builds b and compiles the result with c.
func CompileBuilder[Q ast.Query](c *Compiler, b Builder[Q]) (sqlgen.CompiledQuery, error) {
	q, err := b.Build()
	if err != nil {
		return sqlgen.CompiledQuery{}, err
	}
	return c.Compile(q)
}
