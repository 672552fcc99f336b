// Package storage defines the capability every subscriptions backend must
// provide. The handler layer depends only on these interfaces, so a test
// double can stand in for the relational implementation.
package storage

import (
	"context"

	"newsletter/internal/config"
	"newsletter/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Outcome is the opaque result of a successful write.
type Outcome struct {
	RowsAffected int64
}

// Handle is raw access to the pooled connections, for migrations and ad-hoc
// administrative queries.
type Handle interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Backend persists subscriptions. Implementations must be safe for
// concurrent use and are shared by every request for the process lifetime.
type Backend interface {
	// InsertSubscriber stores s under a freshly generated id and the current
	// UTC time. Failures are returned as *Error and are never retried.
	InsertSubscriber(ctx context.Context, s model.NewSubscriber) (Outcome, error)

	// Handle exposes the underlying pool.
	Handle() Handle

	// Close releases pooled connections.
	Close()
}

// Connector builds backends and their connection options from settings.
type Connector interface {
	// Connect returns a backend without touching the network; the first
	// query performs the handshake.
	Connect(settings config.DatabaseSettings) (Backend, error)

	// ConnectOptions derives driver options from settings. With
	// withDatabase false no database is selected, which is what
	// administrative statements like CREATE DATABASE need.
	ConnectOptions(settings config.DatabaseSettings, withDatabase bool) (*pgx.ConnConfig, error)
}
