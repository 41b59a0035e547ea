package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker puts a breaker in front of a *sql.DB. It satisfies db.Conn,
// so the blob and record repositories take it in place of the bare pool.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig trips only when every one of at least 5 calls in a minute failed:
// a single bad statement must not lock the selection out of its store.
// Missing rows and canceled requests are not failures.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful:     dbCallSucceeded,
	}
}

func dbCallSucceeded(err error) bool {
	return err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled)
}

func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

func (d *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	v, err := d.cb.Execute(func() (interface{}, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.Rows), nil
}

func (d *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	v, err := d.cb.Execute(func() (interface{}, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return v.(sql.Result), nil
}

// QueryRowContext bypasses the breaker: *sql.Row defers its error to Scan,
// so there is no result to count here.
func (d *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := d.cb.Execute(func() (interface{}, error) {
		return nil, d.db.PingContext(ctx)
	})
	return err
}

func (d *DBCircuitBreaker) State() gobreaker.State { return d.cb.State() }

func (d *DBCircuitBreaker) IsOpen() bool { return d.cb.IsOpen() }
