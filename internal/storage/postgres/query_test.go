package postgres

import (
	"context"
	"testing"
	"time"

	"newsletter/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	sql  string
	args []any
}

func (e *recordingExecutor) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql = sql
	e.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestInsertSubscriptionBindsParameters(t *testing.T) {
	ns, err := model.ParseNewSubscriber(`Robert'; DROP TABLE subscriptions;--`, "bobby@example.com")
	require.NoError(t, err)

	exec := &recordingExecutor{}
	id := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tag, err := insertSubscription(context.Background(), exec, id, ns, at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tag.RowsAffected())

	assert.Equal(t, insertSubscriptionSQL, exec.sql)
	assert.NotContains(t, exec.sql, "bobby")
	require.Len(t, exec.args, 4)
	assert.Equal(t, id, exec.args[0])
	assert.Equal(t, "bobby@example.com", exec.args[1])
	assert.Equal(t, `Robert'; DROP TABLE subscriptions;--`, exec.args[2])
	assert.Equal(t, at, exec.args[3])
}
