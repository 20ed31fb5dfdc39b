package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
)

// Tx runs compiled queries inside a database transaction.
type Tx struct {
	tx     *sql.Tx
	runner *runner
}

// TransactionFunc is a function that runs within a transaction
type TransactionFunc func(tx *Tx) error

// Transaction runs fn inside a transaction. The transaction is rolled back
// when fn returns an error or panics, and committed otherwise.
func (c *Client) Transaction(ctx context.Context, opts *sql.TxOptions, fn TransactionFunc) (err error) {
	db, err := c.conn()
	if err != nil {
		return err
	}
	sqlTx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := &Tx{tx: sqlTx, runner: c.runner(sqlTx)}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			debug.Error("transaction rollback failed", "error", rbErr)
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Query runs q inside the transaction.
func (t *Tx) Query(ctx context.Context, q ast.Query) ([]map[string]any, error) {
	return t.runner.query(ctx, q)
}

// Exec runs q inside the transaction.
func (t *Tx) Exec(ctx context.Context, q ast.Query) (sql.Result, error) {
	return t.runner.exec(ctx, q)
}

// TxQueryInto runs q inside the transaction and scans the rows into T.
func TxQueryInto[T any](ctx context.Context, t *Tx, q ast.Query) ([]T, error) {
	return queryInto[T](ctx, t.runner, q)
}
