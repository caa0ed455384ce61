package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
)

// QueryObserver receives the latency of every statement a repository runs.
// The production wiring forwards observations to the Prometheus histogram;
// tests usually leave it unset.
type QueryObserver func(repository, operation string, elapsed time.Duration, err error)

// Option configures repository construction.
type Option func(*repoConfig)

type repoConfig struct {
	observer QueryObserver
}

// WithQueryObserver wires statement latency observation into a repository.
func WithQueryObserver(obs QueryObserver) Option {
	return func(c *repoConfig) { c.observer = obs }
}

// newExecutor returns the raw pool executor, or an observed wrapper when a
// QueryObserver was supplied.
func newExecutor(conn *postgres.Connection, repository string, opts []Option) queryExecutor {
	cfg := repoConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.observer == nil {
		return conn.DB()
	}
	return &observedExecutor{inner: conn.DB(), repository: repository, observe: cfg.observer}
}

// observedExecutor times every statement.  The operation label is the SQL
// verb, which keeps the metric cardinality bounded regardless of query text.
type observedExecutor struct {
	inner      queryExecutor
	repository string
	observe    QueryObserver
}

func (e *observedExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := e.inner.QueryContext(ctx, query, args...)
	e.observe(e.repository, sqlOperation(query), time.Since(start), err)
	return rows, err
}

func (e *observedExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := e.inner.QueryRowContext(ctx, query, args...)
	// Row errors only surface at Scan time, so the observation carries no
	// error here.
	e.observe(e.repository, sqlOperation(query), time.Since(start), nil)
	return row
}

func (e *observedExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := e.inner.ExecContext(ctx, query, args...)
	e.observe(e.repository, sqlOperation(query), time.Since(start), err)
	return res, err
}

// sqlOperation extracts the leading SQL verb in lower case.
func sqlOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

//Personal.AI order the ending
