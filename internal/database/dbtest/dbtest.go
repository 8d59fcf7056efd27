// Package dbtest starts a throwaway Postgres for integration tests.
package dbtest

import (
	"context"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"habitserver/internal/database"
	"habitserver/internal/logger"
)

var tables = []string{
	"pomodoro_sessions", "pomodoro_settings", "reminders", "user_badges", "badges",
	"notifications", "challenge_participants", "challenges", "messages", "chat_participants",
	"chat_rooms", "comments", "posts", "daily_activities", "habits", "blocked_users",
	"friendships", "user_settings", "users",
}

// Start runs a migrated postgres:16-alpine container. The returned function
// closes the pool and terminates the container.
func Start(ctx context.Context) (*sqlx.DB, func(), error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("habits"),
		postgres.WithUsername("habits"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to start container")
	}
	terminate := func() {
		if err := container.Terminate(context.Background()); err != nil {
			logger.Warn("failed to terminate container", "err", err)
		}
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		terminate()
		return nil, nil, errors.Wrap(err, "failed to get connection string")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		terminate()
		return nil, nil, errors.Wrap(err, "failed to connect")
	}

	if _, err := database.NewRunner(db).Apply(ctx, nil); err != nil {
		db.Close()
		terminate()
		return nil, nil, err
	}

	return db, func() {
		db.Close()
		terminate()
	}, nil
}

// Main is a TestMain body: it starts the database unless -short is set or
// Docker is unavailable, stores it in *db and runs the tests. Tests call
// Require to skip when no database is available.
func Main(m *testing.M, db **sqlx.DB) {
	flag.Parse()

	var cleanup func()
	if !testing.Short() {
		var err error
		*db, cleanup, err = Start(context.Background())
		if err != nil {
			logger.Warn("integration tests disabled", "err", err)
		}
	}

	code := m.Run()
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

// Require skips t when no database is available and truncates every table
// once t finishes.
func Require(t *testing.T, db *sqlx.DB) {
	t.Helper()
	if db == nil {
		t.Skip("postgres container not available")
	}
	t.Cleanup(func() {
		_, err := db.ExecContext(context.Background(),
			"TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
		if err != nil {
			t.Errorf("truncate: %v", err)
		}
	})
}
