package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/satishbabariya/sqlkit/internal/debug"
	"github.com/satishbabariya/sqlkit/query/ast"
	"github.com/satishbabariya/sqlkit/query/sqlgen"
)

// QueryEvent describes one statement execution
type QueryEvent struct {
	Kind     ast.QueryKind
	Query    string
	Args     []any
	Duration time.Duration
	Error    error
	Start    time.Time
	End      time.Time
}

// Middleware intercepts statement execution. It must call next to run the
// statement.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

func newEvent(q ast.Query, compiled sqlgen.CompiledQuery) *QueryEvent {
	return &QueryEvent{Kind: q.Kind(), Query: compiled.SQL, Args: compiled.Params}
}

// executeWithMiddleware runs exec through the middleware chain
func executeWithMiddleware(ctx context.Context, middlewares []Middleware, event *QueryEvent, exec func() error) error {
	event.Start = time.Now()
	index := 0

	var next func() error
	next = func() error {
		if index >= len(middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}
		m := middlewares[index]
		index++
		return m(ctx, event, next)
	}
	return next()
}

// LoggingMiddleware logs every statement. A nil logger uses the debug logger.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		l := logger
		if l == nil {
			l = debug.Logger()
		}
		l.DebugContext(ctx, "executing query", "kind", event.Kind, "sql", event.Query, "params", len(event.Args))
		err := next()
		if err != nil {
			l.ErrorContext(ctx, "query failed", "kind", event.Kind, "error", err)
		} else {
			l.DebugContext(ctx, "query completed", "kind", event.Kind, "duration", event.Duration)
		}
		return err
	}
}

// TimingMiddleware reports the duration of every statement
func TimingMiddleware(onTiming func(query string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.Query, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware reports failed statements
func ErrorMiddleware(onError func(query string, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event.Query, err)
		}
		return err
	}
}
