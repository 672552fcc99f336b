// Package postgres is the PostgreSQL storage.Backend, built on a lazily
// connecting pgx pool.
package postgres

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"newsletter/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sslMode maps the require_ssl flag to a libpq sslmode. "prefer" tries TLS
// first and silently falls back to plaintext.
// TODO: move the non-required case to "disable" for local and "verify-full"
// for production once deployments ship a CA bundle.
func sslMode(requireSSL bool) string {
	if requireSSL {
		return "require"
	}
	return "prefer"
}

// isSocketDir reports whether host names a unix-socket directory, as libpq
// treats any host starting with a slash.
func isSocketDir(host string) bool {
	return strings.HasPrefix(host, "/")
}

// connString renders settings as a postgres:// URL. Credentials go through
// url.UserPassword so reserved characters are escaped rather than
// interpreted as connection parameters. Socket directories travel in the
// host query parameter since they cannot be a URL authority; TLS does not
// apply to them.
func connString(s config.DatabaseSettings, withDatabase bool) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.Username, s.Password.Expose()),
	}
	q := url.Values{}
	if isSocketDir(s.Host) {
		q.Set("host", s.Host)
		q.Set("port", strconv.Itoa(int(s.Port)))
	} else {
		u.Host = net.JoinHostPort(s.Host, strconv.Itoa(int(s.Port)))
	}
	if withDatabase {
		u.Path = "/" + s.DatabaseName
	}
	q.Set("sslmode", sslMode(s.RequireSSL))
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectOptions derives single-connection options from settings. Without
// withDatabase the server picks its default database, which is what
// CREATE DATABASE needs.
func ConnectOptions(s config.DatabaseSettings, withDatabase bool) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(connString(s, withDatabase))
	if err != nil {
		return nil, fmt.Errorf("build connection options for %s: %w", s.Host, err)
	}
	return cfg, nil
}

func poolConfig(s config.DatabaseSettings) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(connString(s, true))
	if err != nil {
		return nil, fmt.Errorf("build pool options for %s: %w", s.Host, err)
	}
	if s.MaxConnections > 0 {
		cfg.MaxConns = s.MaxConnections
	}
	cfg.MinConns = 0
	return cfg, nil
}
