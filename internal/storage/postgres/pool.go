package postgres

import (
	"context"
	"time"

	"newsletter/internal/config"
	"newsletter/internal/model"
	"newsletter/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultAcquireTimeout = 2 * time.Second

// Pool is a storage.Backend over a pgxpool.Pool.
type Pool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

var _ storage.Backend = (*Pool)(nil)

// NewPool builds a pool from settings. No connection is opened until the
// first statement runs.
func NewPool(s config.DatabaseSettings) (*Pool, error) {
	cfg, err := poolConfig(s)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, storage.NewErrorWithCause(storage.ErrCodeConnect, "create pool", err)
	}
	timeout := s.AcquireTimeout
	if timeout <= 0 {
		timeout = defaultAcquireTimeout
	}
	return &Pool{pool: pool, acquireTimeout: timeout}, nil
}

// InsertSubscriber writes one row with a fresh id and the current UTC time.
func (p *Pool) InsertSubscriber(ctx context.Context, s model.NewSubscriber) (storage.Outcome, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return storage.Outcome{}, err
	}
	defer conn.Release()

	tag, err := insertSubscription(ctx, conn, uuid.New(), s, time.Now().UTC())
	if err != nil {
		return storage.Outcome{}, storage.NewErrorWithCause(storage.ErrCodeQuery, "insert subscription", err)
	}
	return storage.Outcome{RowsAffected: tag.RowsAffected()}, nil
}

// acquire waits at most acquireTimeout for a connection, opening one if the
// pool has spare capacity.
func (p *Pool) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, storage.NewErrorWithCause(storage.ErrCodeConnect, "acquire connection", err)
	}
	return conn, nil
}

func (p *Pool) Handle() storage.Handle {
	return p.pool
}

// Raw exposes the pool for callers that need a database/sql bridge.
func (p *Pool) Raw() *pgxpool.Pool {
	return p.pool
}

func (p *Pool) Close() {
	p.pool.Close()
}

// Connector implements storage.Connector for PostgreSQL.
type Connector struct{}

var _ storage.Connector = Connector{}

func (Connector) Connect(s config.DatabaseSettings) (storage.Backend, error) {
	pool, err := NewPool(s)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (Connector) ConnectOptions(s config.DatabaseSettings, withDatabase bool) (*pgx.ConnConfig, error) {
	return ConnectOptions(s, withDatabase)
}
