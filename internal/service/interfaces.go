package service

import (
	"context"

	"github.com/clinicore/clinic-registry/models"
)

// AuthService implements the authentication core: credential verification,
// token issuance and validation, and the admin bootstrap policy.
type AuthService interface {
	// Register creates a patient account from a handle, contact address,
	// and plaintext password.
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Login authenticates by identifier (username or email) and password.
	// The distinguished admin credential pair is recognized before any
	// store lookup; the admin identity is provisioned lazily on first use.
	Login(ctx context.Context, identifier, password string) (models.User, error)

	// CreateToken issues a signed token bound to the user's id and a
	// snapshot of their current role.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// Authenticate verifies a raw token string and resolves the bound
	// identity against the store. The returned user carries the token's
	// role snapshot and never carries the credential hash.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
}

// PatientService implements the intake-record flows. Owner-scoped methods
// receive the caller's user id and push the ownership equality check into
// the store query; unscoped methods are reachable only behind the admin gate.
type PatientService interface {
	CreatePatient(ctx context.Context, owner models.User, patient models.Patient) (models.Patient, error)
	GetOwnPatient(ctx context.Context, ownerID string) (models.Patient, error)
	UpdateOwnPatient(ctx context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error)
	DeleteOwnPatient(ctx context.Context, id, ownerID string) error

	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatient(ctx context.Context, id string) (models.Patient, error)
	UpdatePatient(ctx context.Context, id string, update models.PatientUpdate) (models.Patient, error)
	// DeletePatient removes the record and its owning user account.
	DeletePatient(ctx context.Context, id string) error
}

// IDGenerator produces identifiers for newly created entities.
type IDGenerator interface {
	Generate() string
}
