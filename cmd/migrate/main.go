// Command migrate applies the embedded schema migrations that have not run yet.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"neighborhood/config"
	"neighborhood/internal/errors"
	"neighborhood/migrations"

	"github.com/jackc/pgx/v5"
)

const migrateTimeout = 5 * time.Minute

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := config.LoadDotenv(); err != nil {
		logger.Error("Failed to load environment", slog.Any("error", err))
		os.Exit(1)
	}

	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	flag.Parse()

	if *dsn == "" {
		logger.Error("Set DATABASE_URL or pass -dsn")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, *dsn)
	if err != nil {
		logger.Error("Unable to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	applied, err := migrate(ctx, conn, logger)
	if err != nil {
		logger.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Schema up to date", slog.Int("applied", applied))
}

func migrate(ctx context.Context, conn *pgx.Conn, logger *slog.Logger) (int, error) {
	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version     VARCHAR(255) PRIMARY KEY,
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return 0, errors.Wrap(err, "failed to create schema_migrations")
	}

	all, err := migrations.All()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read migrations")
	}

	applied := 0
	for _, m := range all {
		var exists bool
		err := conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version,
		).Scan(&exists)
		if err != nil {
			return applied, errors.Wrapf(err, "failed to check %s", m.Version)
		}
		if exists {
			continue
		}

		// Each file and its bookkeeping row commit together.
		err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version)

			return err
		})
		if err != nil {
			return applied, errors.Wrapf(err, "failed to apply %s", m.Version)
		}

		logger.Info("Applied migration", slog.String("version", m.Version))
		applied++
	}

	return applied, nil
}
