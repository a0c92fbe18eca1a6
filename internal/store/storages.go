// Package store implements the persistence layer: PostgreSQL-backed
// repositories for user accounts and patient intake records, connection
// management, and driver error classification.
//
// Uniqueness invariants (username, email, one intake record per owner) are
// enforced by the database schema, not by application pre-checks; the
// repositories translate constraint violations into domain sentinel errors.
package store

import (
	"context"

	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/logger"
)

// Storages bundles every repository behind one injection point for the
// service layer.
type Storages struct {
	UserRepository    UserRepository
	PatientRepository PatientRepository

	db *DB
}

// NewStorages connects to the database, applies pending migrations, and
// constructs all repositories over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		PatientRepository: NewPatientRepository(db, log),
		db:                db,
	}, nil
}

// Ping verifies database connectivity. Used by the health endpoint.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
