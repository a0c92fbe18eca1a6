package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the stdlib connection pool together with a driver error
// classifier and a fallback logger. All repositories share one DB value.
type DB struct {
	*sql.DB
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

// NewConnectPostgres opens a PostgreSQL connection via the pgx stdlib driver,
// verifies it with a ping, and returns the wrapped pool.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:              conn,
		logger:          log,
		errorClassifier: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// Migrate applies the embedded goose migrations to the connected database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// postgresError returns the PostgreSQL error code of err, or an empty string
// when err did not originate from the driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
