package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/internal/utils"
	"github.com/clinicore/clinic-registry/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, the admin bootstrap
// policy, and the JWT token lifecycle, using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// accounts.
	userRepository store.UserRepository

	// idGenerator assigns identifiers to newly created accounts.
	idGenerator IDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during
	// verification.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// admin is the distinguished out-of-band credential pair. It is
	// compared verbatim during login, before any store lookup, because the
	// admin identity may not exist yet on a fresh deployment.
	admin config.Admin

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, idGenerator IDGenerator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		idGenerator:    idGenerator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		admin:          cfg.Admin,
		logger:         logger,
	}
}

// Register creates a new patient account.
//
// It validates that username, email, and password are all non-empty,
// lower-cases the email, hashes the password with bcrypt, and delegates
// persistence to the UserRepository. There is no uniqueness pre-check: the
// store's unique indexes are the only arbiter, so two concurrent
// registrations of the same handle cannot both succeed.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if any field is empty.
//   - store.ErrUserAlreadyExists if the handle or address is taken.
func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		log.Error().Str("username", username).Str("email", email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:           a.idGenerator.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RolePatient,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user or bootstraps the admin identity.
//
// The supplied identifier and password are first compared, verbatim, against
// the configured admin pair before any store lookup, because on a fresh
// deployment the admin identity does not exist yet. On a match the identity
// is fetched or lazily created with the admin role.
//
// Otherwise the identifier is resolved as username-or-email and the
// password is verified against the stored bcrypt digest.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if identifier or password is empty.
//   - store.ErrUserNotFound if no account matches the identifier.
//   - ErrWrongPassword if the password does not match.
//
// The latter two must be rendered identically to the caller.
func (a *authService) Login(ctx context.Context, identifier, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if identifier == "" || password == "" {
		log.Error().Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if identifier == a.admin.Username && password == a.admin.Password {
		return a.bootstrapAdmin(ctx)
	}

	foundUser, err := a.userRepository.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("user search by identifier failed")
		return models.User{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	if !utils.CheckPasswordHash(foundUser.PasswordHash, password) {
		log.Error().Str("id", foundUser.ID).Str("username", foundUser.Username).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// bootstrapAdmin returns the admin identity, creating it on first use.
//
// Creation is idempotent: if a concurrent login wins the insert race, the
// unique index rejects the duplicate and the existing row is re-fetched, so
// repeated admin logins reuse the one identity created by the first.
func (a *authService) bootstrapAdmin(ctx context.Context) (models.User, error) {
	log := logger.FromContext(ctx)

	adminUser, err := a.userRepository.FindUserByUsername(ctx, a.admin.Username)
	if err == nil {
		return adminUser, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Msg("admin lookup failed")
		return models.User{}, fmt.Errorf("admin lookup failed: %w", err)
	}

	log.Info().Str("username", a.admin.Username).Msg("provisioning admin identity")

	passwordHash, err := utils.HashPassword(a.admin.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.idGenerator.Generate(),
		Username:     a.admin.Username,
		Email:        strings.ToLower(a.admin.Email),
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	})
	if err == nil {
		return created, nil
	}

	if errors.Is(err, store.ErrUserAlreadyExists) {
		// Lost the insert race to a concurrent bootstrap.
		return a.userRepository.FindUserByUsername(ctx, a.admin.Username)
	}

	log.Err(err).Msg("admin creation failed")
	return models.User{}, fmt.Errorf("admin creation failed: %w", err)
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim and the user's current role as a
// snapshot claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authenticate validates a raw JWT string and resolves the bound identity.
//
// Signature, issuer, and expiry failures, as well as a subject that no
// longer exists in the store, are all normalised to ErrTokenInvalid so that
// callers cannot distinguish them. On success the returned user carries the
// token's role snapshot (the role is not re-derived per request) and the
// credential hash is cleared.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("token validation failed")
		return models.User{}, ErrTokenInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		log.Err(err).Str("id", token.UserID).Msg("token subject no longer resolves to an identity")
		return models.User{}, ErrTokenInvalid
	}

	user.Role = token.Role
	user.PasswordHash = ""

	return user, nil
}
