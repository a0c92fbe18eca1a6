package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with the server-assigned CreatedAt.
//
// The INSERT relies on the unique indexes over username and email: a
// concurrent registration of the same handle or address loses the race at
// the database, not at an application pre-check.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.ID, user.Username, user.Email, user.PasswordHash, user.Role)

	var created models.User
	if err := row.Scan(&created.ID, &created.Username, &created.Email, &created.PasswordHash, &created.Role, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Str("username", user.Username).Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		}

		if r.db.errorClassifier.Classify(err) == Retryable {
			log.Warn().Str("func", "userRepository.CreateUser").Msg("transient database error, insert may be retried")
		}

		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByID retrieves the account with the given identifier.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, findUserByID, id, "userRepository.FindUserByID")
}

// FindUserByUsername retrieves the account with the given case-sensitive
// username. Used by the admin bootstrap path of the login flow.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username, "userRepository.FindUserByUsername")
}

// FindUserByIdentifier retrieves the account whose username or email equals
// the supplied login identifier.
func (r *userRepository) FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return r.findOne(ctx, findUserByIdentifier, identifier, "userRepository.FindUserByIdentifier")
}

func (r *userRepository) findOne(ctx context.Context, query, arg, op string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", op).Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}
