// Package client executes compiled queries over database/sql.
package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/compiler"
	"github.com/satishbabariya/sqlkit/query/sqlgen"
)

var (
	// ErrNotConnected is returned after Close or before a connection exists.
	ErrNotConnected = errors.New("database not connected")
	// ErrUnsupportedProvider is returned for an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrNullValue is returned when a NULL column is scanned into a field
	// that cannot hold it. Use a pointer or sql.Null* field instead.
	ErrNullValue = errors.New("NULL value in non-nullable field")
)

// Config holds database connection configuration.
type Config struct {
	Provider       string
	URL            string
	MaxConnections int // 0 leaves the driver default
	MaxIdleTime    int // seconds
	ConnectTimeout int // seconds, 0 means no timeout
}

// Client compiles query descriptions for its provider and runs them. Each
// client owns its compiler.
type Client struct {
	db       *sql.DB
	provider string
	compiler *compiler.Compiler

	mu          sync.RWMutex
	middlewares []Middleware
	closed      bool
}

// Open connects to the database described by cfg and pings it.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	driverName := getDriverName(cfg.Provider)
	if driverName == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
	if driverName == "mysql" {
		if _, err := mysql.ParseDSN(cfg.URL); err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
	}

	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(max(cfg.MaxConnections/2, 1))
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.ConnectTimeout)*time.Second)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c, err := NewFromDB(cfg.Provider, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	debug.Info("database connected", "provider", c.provider, "driver", driverName)
	return c, nil
}

// NewFromDB wraps an existing connection pool.
func NewFromDB(provider string, db *sql.DB) (*Client, error) {
	if getDriverName(provider) == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	comp, err := compiler.New(provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	return &Client{db: db, provider: provider, compiler: comp}, nil
}

// getDriverName maps provider names to database/sql driver names
func getDriverName(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "postgresql", "postgres", "pg":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return ""
	}
}

// Provider returns the configured provider name.
func (c *Client) Provider() string { return c.provider }

// Dialect returns the SQL dialect queries are compiled for.
func (c *Client) Dialect() sqlgen.Dialect { return c.compiler.Dialect() }

// DB returns the underlying connection pool.
func (c *Client) DB() *sql.DB { return c.db }

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	db, err := c.conn()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close closes the connection pool. Calling Close twice is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}

// Use appends a middleware to the chain. Middlewares run in the order they
// were added.
func (c *Client) Use(m Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middlewares = append(c.middlewares, m)
}

// Compile renders q for the client's dialect.
func (c *Client) Compile(q ast.Query) (sqlgen.CompiledQuery, error) {
	return c.compiler.Compile(q)
}

// Query compiles q, runs it and returns every row as a column→value map.
func (c *Client) Query(ctx context.Context, q ast.Query) ([]map[string]any, error) {
	db, err := c.conn()
	if err != nil {
		return nil, err
	}
	return c.runner(db).query(ctx, q)
}

// Exec compiles q and runs it without reading rows.
func (c *Client) Exec(ctx context.Context, q ast.Query) (sql.Result, error) {
	db, err := c.conn()
	if err != nil {
		return nil, err
	}
	return c.runner(db).exec(ctx, q)
}

// QueryInto compiles q, runs it and scans the rows into T by db tag.
func QueryInto[T any](ctx context.Context, c *Client, q ast.Query) ([]T, error) {
	db, err := c.conn()
	if err != nil {
		return nil, err
	}
	return queryInto[T](ctx, c.runner(db), q)
}

func (c *Client) conn() (*sql.DB, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db, nil
}

func (c *Client) runner(conn querier) *runner {
	c.mu.RLock()
	mws := append([]Middleware(nil), c.middlewares...)
	c.mu.RUnlock()
	return &runner{conn: conn, compiler: c.compiler, middlewares: mws}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type runner struct {
	conn        querier
	compiler    *compiler.Compiler
	middlewares []Middleware
}

func (r *runner) query(ctx context.Context, q ast.Query) ([]map[string]any, error) {
	var out []map[string]any
	err := r.rows(ctx, q, func(rows *sql.Rows) error {
		var err error
		out, err = scanMaps(rows)
		return err
	})
	return out, err
}

func (r *runner) rows(ctx context.Context, q ast.Query, scan func(*sql.Rows) error) error {
	compiled, err := r.compiler.Compile(q)
	if err != nil {
		return err
	}
	return executeWithMiddleware(ctx, r.middlewares, newEvent(q, compiled), func() error {
		rows, err := r.conn.QueryContext(ctx, compiled.SQL, compiled.Params...)
		if err != nil {
			return err
		}
		defer rows.Close()
		return scan(rows)
	})
}

func (r *runner) exec(ctx context.Context, q ast.Query) (sql.Result, error) {
	compiled, err := r.compiler.Compile(q)
	if err != nil {
		return nil, err
	}
	var res sql.Result
	err = executeWithMiddleware(ctx, r.middlewares, newEvent(q, compiled), func() error {
		var err error
		res, err = r.conn.ExecContext(ctx, compiled.SQL, compiled.Params...)
		return err
	})
	return res, err
}

func queryInto[T any](ctx context.Context, r *runner, q ast.Query) ([]T, error) {
	var out []T
	err := r.rows(ctx, q, func(rows *sql.Rows) error {
		var err error
		out, err = ScanRows[T](rows)
		return err
	})
	return out, err
}
