// Package memory is an in-process storage.Backend for tests and local
// experiments.
package memory

import (
	"context"
	"sync"
	"time"

	"newsletter/internal/model"
	"newsletter/internal/storage"

	"github.com/google/uuid"
)

// Row mirrors one row of the subscriptions table.
type Row struct {
	ID           uuid.UUID
	Email        string
	Name         string
	SubscribedAt time.Time
}

// Backend keeps subscriptions in a slice.
type Backend struct {
	mu      sync.Mutex
	rows    []Row
	failErr error
	calls   int
}

var _ storage.Backend = (*Backend)(nil)

// New returns an empty Backend.
func New() *Backend {
	return &Backend{}
}

// FailWith makes every later insert return err wrapped as a query error.
// Passing nil restores normal behaviour.
func (b *Backend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failErr = err
}

func (b *Backend) InsertSubscriber(ctx context.Context, s model.NewSubscriber) (storage.Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if err := ctx.Err(); err != nil {
		return storage.Outcome{}, storage.NewErrorWithCause(storage.ErrCodeConnect, "acquire connection", err)
	}
	if b.failErr != nil {
		return storage.Outcome{}, storage.NewErrorWithCause(storage.ErrCodeQuery, "insert subscription", b.failErr)
	}
	b.rows = append(b.rows, Row{
		ID:           uuid.New(),
		Email:        s.Email.String(),
		Name:         s.Name.String(),
		SubscribedAt: time.Now().UTC(),
	})
	return storage.Outcome{RowsAffected: 1}, nil
}

// Rows returns a copy of everything stored so far.
func (b *Backend) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Row, len(b.rows))
	copy(out, b.rows)
	return out
}

// Calls counts InsertSubscriber invocations, failed ones included.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// Handle returns nil; there is no pool behind this backend.
func (b *Backend) Handle() storage.Handle {
	return nil
}

func (b *Backend) Close() {}
