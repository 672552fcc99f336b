package postgres

import (
	"context"
	"time"

	"newsletter/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const insertSubscriptionSQL = `
        INSERT INTO subscriptions (id, email, name, subscribed_at)
        VALUES ($1, $2, $3, $4)
    `

type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertSubscription(ctx context.Context, db executor, id uuid.UUID, s model.NewSubscriber, at time.Time) (pgconn.CommandTag, error) {
	return db.Exec(ctx, insertSubscriptionSQL, id, s.Email.String(), s.Name.String(), at)
}
