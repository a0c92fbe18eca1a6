package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/internal/utils"
	"github.com/clinicore/clinic-registry/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock UserRepository
// ─────────────────────────────────────────────

// mockUserRepository implements store.UserRepository for unit tests.
// Each method field can be overridden per test case.
type mockUserRepository struct {
	createUserFn           func(ctx context.Context, user models.User) (models.User, error)
	findUserByIDFn         func(ctx context.Context, id string) (models.User, error)
	findUserByUsernameFn   func(ctx context.Context, username string) (models.User, error)
	findUserByIdentifierFn func(ctx context.Context, identifier string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return m.findUserByIDFn(ctx, id)
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findUserByUsernameFn(ctx, username)
}

func (m *mockUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return m.findUserByIdentifierFn(ctx, identifier)
}

// stubIDGenerator returns a fixed identifier.
type stubIDGenerator struct {
	id string
}

func (g stubIDGenerator) Generate() string {
	return g.id
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "clinic-registry-test",
		TokenDuration: time.Hour,
		Admin: config.Admin{
			Username: "admin",
			Password: "admin-bootstrap-password",
			Email:    "admin@dentalclinic.com",
		},
	}
}

func newTestAuthService(users store.UserRepository) AuthService {
	return NewAuthService(users, stubIDGenerator{id: "generated-id"}, testAppConfig(), logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	var persisted models.User
	users := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			user.CreatedAt = time.Now()
			return user, nil
		},
	}

	svc := newTestAuthService(users)
	registered, err := svc.Register(testContext(), "bob", "Bob@Example.COM", "password123")
	require.NoError(t, err)

	assert.Equal(t, "generated-id", registered.ID)
	assert.Equal(t, models.RolePatient, registered.Role)
	assert.Equal(t, "bob@example.com", persisted.Email, "email must be stored lower-cased")
	assert.NotEqual(t, "password123", persisted.PasswordHash, "password must be hashed before persistence")
	assert.True(t, utils.CheckPasswordHash(persisted.PasswordHash, "password123"))
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "no username", email: "a@b.c", password: "pw"},
		{name: "no email", username: "bob", password: "pw"},
		{name: "no password", username: "bob", email: "a@b.c"},
		{name: "whitespace username", username: "   ", email: "a@b.c", password: "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(testContext(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestRegister_HandleTaken(t *testing.T) {
	users := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}

	svc := newTestAuthService(users)
	_, err := svc.Register(testContext(), "bob", "bob@example.com", "password123")
	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

// ─────────────────────────────────────────────
// Login: regular accounts
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	stored := models.User{ID: "u-1", Username: "bob", Email: "bob@example.com", PasswordHash: hash, Role: models.RolePatient}
	users := &mockUserRepository{
		findUserByIdentifierFn: func(_ context.Context, identifier string) (models.User, error) {
			assert.Equal(t, "bob", identifier)
			return stored, nil
		},
	}

	svc := newTestAuthService(users)
	found, err := svc.Login(testContext(), "bob", "password123")
	require.NoError(t, err)
	assert.Equal(t, stored, found)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Login(testContext(), "", "password")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(testContext(), "bob", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	users := &mockUserRepository{
		findUserByIdentifierFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{ID: "u-1", PasswordHash: hash}, nil
		},
	}

	svc := newTestAuthService(users)
	_, err = svc.Login(testContext(), "bob", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownIdentifier(t *testing.T) {
	users := &mockUserRepository{
		findUserByIdentifierFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	svc := newTestAuthService(users)
	_, err := svc.Login(testContext(), "nobody", "password")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

// ─────────────────────────────────────────────
// Login: admin bootstrap
// ─────────────────────────────────────────────

// TestLogin_AdminBootstrap_FirstLogin verifies that the first login with the
// configured admin pair provisions the admin identity with a hashed password
// and the admin role.
func TestLogin_AdminBootstrap_FirstLogin(t *testing.T) {
	var created models.User
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			created = user
			return user, nil
		},
	}

	svc := newTestAuthService(users)
	admin, err := svc.Login(testContext(), "admin", "admin-bootstrap-password")
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin", created.Username)
	assert.Equal(t, "admin@dentalclinic.com", created.Email)
	assert.NotEqual(t, "admin-bootstrap-password", created.PasswordHash)
	assert.True(t, utils.CheckPasswordHash(created.PasswordHash, "admin-bootstrap-password"))
}

// TestLogin_AdminBootstrap_SecondLogin verifies that repeated admin logins
// reuse the already provisioned identity without inserting again.
func TestLogin_AdminBootstrap_SecondLogin(t *testing.T) {
	existing := models.User{ID: "admin-id", Username: "admin", Role: models.RoleAdmin}
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return existing, nil
		},
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			t.Fatal("CreateUser must not be called when the admin identity exists")
			return models.User{}, nil
		},
	}

	svc := newTestAuthService(users)
	admin, err := svc.Login(testContext(), "admin", "admin-bootstrap-password")
	require.NoError(t, err)
	assert.Equal(t, existing, admin)
}

// TestLogin_AdminBootstrap_LostInsertRace verifies that a concurrent
// bootstrap losing the insert race falls back to fetching the winner's row.
func TestLogin_AdminBootstrap_LostInsertRace(t *testing.T) {
	winner := models.User{ID: "admin-id", Username: "admin", Role: models.RoleAdmin}
	lookups := 0
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			lookups++
			if lookups == 1 {
				return models.User{}, store.ErrUserNotFound
			}
			return winner, nil
		},
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}

	svc := newTestAuthService(users)
	admin, err := svc.Login(testContext(), "admin", "admin-bootstrap-password")
	require.NoError(t, err)
	assert.Equal(t, winner, admin)
	assert.Equal(t, 2, lookups)
}

// TestLogin_AdminUsernameWithWrongPassword verifies that presenting the admin
// username with a wrong password does not trigger the bootstrap and falls
// through to the regular credential check.
func TestLogin_AdminUsernameWithWrongPassword(t *testing.T) {
	users := &mockUserRepository{
		findUserByIdentifierFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			t.Fatal("bootstrap lookup must not run without a verbatim password match")
			return models.User{}, nil
		},
	}

	svc := newTestAuthService(users)
	_, err := svc.Login(testContext(), "admin", "not-the-admin-password")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

// ─────────────────────────────────────────────
// CreateToken / Authenticate
// ─────────────────────────────────────────────

func TestCreateToken_Success(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(testContext(), models.User{ID: "u-1", Role: models.RolePatient})
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "u-1", token.UserID)
}

func TestCreateToken_InvalidUser(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.CreateToken(testContext(), models.User{})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthenticate_Success(t *testing.T) {
	stored := models.User{ID: "u-1", Username: "bob", PasswordHash: "digest", Role: models.RolePatient}
	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, id string) (models.User, error) {
			assert.Equal(t, "u-1", id)
			return stored, nil
		},
	}

	svc := newTestAuthService(users)
	token, err := svc.CreateToken(testContext(), stored)
	require.NoError(t, err)

	user, err := svc.Authenticate(testContext(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Empty(t, user.PasswordHash, "credential hash must never leave the service")
}

// TestAuthenticate_RoleSnapshotWins verifies that the role carried by the
// token is applied over whatever the store currently holds: the snapshot is
// trusted for the token's whole validity window.
func TestAuthenticate_RoleSnapshotWins(t *testing.T) {
	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{ID: "u-1", Role: models.RolePatient}, nil
		},
	}

	svc := newTestAuthService(users)
	token, err := svc.CreateToken(testContext(), models.User{ID: "u-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	user, err := svc.Authenticate(testContext(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Authenticate(testContext(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthenticate_DeletedIdentity(t *testing.T) {
	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	svc := newTestAuthService(users)
	token, err := svc.CreateToken(testContext(), models.User{ID: "u-1", Role: models.RolePatient})
	require.NoError(t, err)

	_, err = svc.Authenticate(testContext(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthenticate_StoreFailureIsNotDisclosed(t *testing.T) {
	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, errors.New("connection reset")
		},
	}

	svc := newTestAuthService(users)
	token, err := svc.CreateToken(testContext(), models.User{ID: "u-1", Role: models.RolePatient})
	require.NoError(t, err)

	_, err = svc.Authenticate(testContext(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
