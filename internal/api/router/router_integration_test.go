package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsletter/internal/api/router"
	"newsletter/internal/config"
	"newsletter/internal/storage/postgres/postgrestest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribePersistsToPostgres(t *testing.T) {
	pool := postgrestest.New(t, postgrestest.Settings(t))
	srv := httptest.NewServer(router.New(config.ApplicationSettings{}, pool, zerolog.Nop()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/subscriptions", "application/x-www-form-urlencoded",
		strings.NewReader("name=le%20guin&email=ursula_le_guin%40gmail.com"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var email, name string
	err = pool.Handle().QueryRow(context.Background(), `SELECT email, name FROM subscriptions`).Scan(&email, &name)
	require.NoError(t, err)
	assert.Equal(t, "ursula_le_guin@gmail.com", email)
	assert.Equal(t, "le guin", name)
}

func TestSubscribeReturns500WithoutSchema(t *testing.T) {
	s := postgrestest.Settings(t)
	pool := postgrestest.New(t, s)
	_, err := pool.Handle().Exec(context.Background(), `DROP TABLE subscriptions`)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(config.ApplicationSettings{}, pool, zerolog.Nop()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/subscriptions", "application/x-www-form-urlencoded",
		strings.NewReader("name=le%20guin&email=ursula_le_guin%40gmail.com"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
