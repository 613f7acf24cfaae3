// Package store implements the account and todo stores on top of
// database/sql. SQL is written to run unchanged against Postgres (lib/pq)
// and SQLite (go-sqlite3): positional $N placeholders in first-occurrence
// order, timestamps computed in Go, and IN lists built from generated
// placeholders.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInput marks a request rejected before touching the database.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks an operation whose target row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks a store call that timed out or lost its connection.
	ErrUnavailable = errors.New("store unavailable")
)

const defaultTimeout = 5 * time.Second

// Store wraps a sql.DB with the operations the HTTP surface needs. Every
// call is bounded by the configured timeout.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func New(db *sql.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{db: db, timeout: timeout}
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// fail wraps a database error, translating deadline hits and cancellations
// into ErrUnavailable so callers can tell "store unreachable in time" from
// "bad query".
func fail(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nowStamp is the full ISO-8601 timestamp written on create and edit.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// todayStamp is the date-only form written by a bulk task replacement. The
// granularity mismatch with nowStamp is inherited behavior and pinned by
// tests.
func todayStamp() string {
	return time.Now().UTC().Format("2006-01-02")
}
