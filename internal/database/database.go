// Package database opens the PostgreSQL pool and applies schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Retry controls the start-up connection loop
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry waits up to a minute for the database to come up
var DefaultRetry = Retry{Attempts: 30, Delay: 2 * time.Second}

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

// Connect connects to PostgreSQL with retries
func Connect(ctx context.Context, dsn string, retry Retry, logger *zap.Logger) (*sql.DB, error) {
	var err error

	for i := 0; i < retry.Attempts; i++ {
		var db *sql.DB
		db, err = openDB(dsn)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				db.SetMaxOpenConns(25)
				db.SetMaxIdleConns(5)
				db.SetConnMaxLifetime(5 * time.Minute)
				return db, nil
			}
			db.Close()
		}

		logger.Warn("Failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retry.Delay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retry.Attempts, err)
}

// Migrate applies pending migrations from sourceURL
func Migrate(db *sql.DB, sourceURL string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
