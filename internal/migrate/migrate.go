// Package migrate applies the embedded SQL schema to a PostgreSQL database.
// Each migration runs in its own transaction and is recorded in
// schema_migrations, so a rerun only applies what is new.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	createVersionTableSQL = `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    TEXT        PRIMARY KEY,
            name       TEXT        NOT NULL,
            applied_at timestamptz NOT NULL DEFAULT now()
        )
    `
	selectAppliedSQL  = `SELECT version FROM schema_migrations`
	insertVersionSQL  = `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`
	databaseExistsSQL = `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`
)

// Migration is one SQL file.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Load reads every *.sql file at the root of fsys, ordered by file name.
// Files must be named <version>_<name>.sql; blank files are skipped.
func Load(fsys fs.FS) ([]Migration, error) {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	seen := make(map[string]string, len(files))
	migrations := make([]Migration, 0, len(files))
	for _, file := range files {
		version, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
		if !ok || version == "" || name == "" {
			return nil, fmt.Errorf("migration %s: file name must be <version>_<name>.sql", file)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration %s: version %s already used by %s", file, version, prev)
		}
		seen[version] = file

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(data)})
	}
	return migrations, nil
}

// Runner applies migrations over a database/sql handle.
type Runner struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewRunner creates a Runner with a scoped logger.
func NewRunner(db *sql.DB, logger zerolog.Logger) *Runner {
	return &Runner{
		db:     db,
		logger: logger.With().Str("component", "migrate").Logger(),
	}
}

// Up applies every migration not yet recorded and returns how many ran.
// It stops at the first failure; earlier migrations stay committed.
func (r *Runner) Up(ctx context.Context, migrations []Migration) (int, error) {
	if _, err := r.db.ExecContext(ctx, createVersionTableSQL); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := r.applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Version] {
			r.logger.Debug().Str("version", m.Version).Msg("Migration already applied")
			continue
		}
		if err := r.apply(ctx, m); err != nil {
			return count, err
		}
		r.logger.Info().Str("version", m.Version).Str("name", m.Name).Msg("Applied migration")
		count++
	}
	return count, nil
}

func (r *Runner) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, selectAppliedSQL)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration %s_%s: %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, insertVersionSQL, m.Version, m.Name); err != nil {
		return fmt.Errorf("record migration %s: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Version, err)
	}
	return nil
}

// EnsureDatabase creates the named database unless it already exists and
// reports whether it did. db must not be connected to that database.
func EnsureDatabase(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, databaseExistsSQL, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}
	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return false, fmt.Errorf("create database %s: %w", name, err)
	}
	return true, nil
}
