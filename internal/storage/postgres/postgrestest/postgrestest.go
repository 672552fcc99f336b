// Package postgrestest provisions a freshly migrated database per test. Tests
// using it are skipped unless APP_TEST_DATABASE=1.
package postgrestest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"newsletter/internal/config"
	"newsletter/internal/migrate"
	"newsletter/internal/storage/postgres"
	"newsletter/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// EnableEnv gates every database test.
const EnableEnv = "APP_TEST_DATABASE"

// Settings loads the configured database settings with a random database
// name, skipping the test when databases are disabled.
func Settings(t testing.TB) config.DatabaseSettings {
	t.Helper()
	if os.Getenv(EnableEnv) != "1" {
		t.Skipf("set %s=1 to run tests against PostgreSQL", EnableEnv)
	}

	settings, err := config.Load(filepath.Join(moduleRoot(t), "configuration"))
	require.NoError(t, err)

	s := settings.Database
	s.DatabaseName = "newsletter_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return s
}

// New creates a database named by s, applies migrations and returns a pool
// on it. The pool is closed when the test ends.
func New(t testing.TB, s config.DatabaseSettings) *postgres.Pool {
	t.Helper()
	ctx := context.Background()

	admin, err := postgres.ConnectOptions(s, false)
	require.NoError(t, err)
	adminDB := stdlib.OpenDB(*admin)
	defer adminDB.Close()

	_, err = migrate.EnsureDatabase(ctx, adminDB, s.DatabaseName)
	require.NoError(t, err)

	pool, err := postgres.NewPool(s)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool.Raw())
	defer db.Close()

	ms, err := migrate.Load(migrations.Files)
	require.NoError(t, err)
	_, err = migrate.NewRunner(db, zerolog.Nop()).Up(ctx, ms)
	require.NoError(t, err)

	return pool
}

func moduleRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir := filepath.Dir(file)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found")
		dir = parent
	}
}
