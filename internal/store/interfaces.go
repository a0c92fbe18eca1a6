package store

import (
	"context"

	"github.com/clinicore/clinic-registry/models"
)

// UserRepository is the credential-store contract consumed by the
// authentication flows. Uniqueness of username and email is enforced by the
// store itself: CreateUser is an atomic insert-or-fail.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// FindUserByIdentifier resolves a login identifier that may be either a
	// username or an email address.
	FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error)
}

// PatientRepository is the intake-record store contract. Owner-scoped
// operations take the caller's user ID and match it against the record's
// owner inside the query itself, so a non-owner miss is indistinguishable
// from a missing record.
type PatientRepository interface {
	CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error)
	FindPatientByOwner(ctx context.Context, userID string) (models.Patient, error)
	FindPatientByID(ctx context.Context, id string) (models.Patient, error)
	ListPatients(ctx context.Context) ([]models.Patient, error)

	// UpdatePatient applies a partial update. When ownerID is non-empty the
	// update is owner-scoped; an empty ownerID updates any record (admin).
	UpdatePatient(ctx context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error)

	// DeletePatientOwned removes the caller's own intake record and nothing
	// else; the owning user account is untouched.
	DeletePatientOwned(ctx context.Context, id, ownerID string) error

	// DeletePatientCascade removes an intake record together with its owning
	// user account. The patients→users foreign key cascade makes the pair
	// of deletions a single atomic statement.
	DeletePatientCascade(ctx context.Context, id string) error
}
