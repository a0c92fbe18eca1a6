package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/clinicore/clinic-registry/models"
)

const (
	userColumns = `id, username, email, password_hash, role, created_at`

	createUser = `INSERT INTO users (id, username, email, password_hash, role)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, username, email, password_hash, role, created_at;`

	findUserByID = `SELECT id, username, email, password_hash, role, created_at
    FROM users
    WHERE id = $1;`

	findUserByUsername = `SELECT id, username, email, password_hash, role, created_at
    FROM users
    WHERE username = $1;`

	findUserByIdentifier = `SELECT id, username, email, password_hash, role, created_at
    FROM users
    WHERE username = $1 OR email = $1;`

	patientColumns = `id, user_id, username, email, first_name, middle_initial, last_name,
		date_of_birth, phone_number, gender, address, allergies, illnesses,
		has_insurance, insurance_provider, insurance_member_number,
		registration_date, created_at, updated_at`

	createPatient = `INSERT INTO patients (
			id,
			user_id,
			username,
			email,
			first_name,
			middle_initial,
			last_name,
			date_of_birth,
			phone_number,
			gender,
			address,
			allergies,
			illnesses,
			has_insurance,
			insurance_provider,
			insurance_member_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + patientColumns + `;`

	findPatientByOwner = `SELECT ` + patientColumns + `
		FROM patients
		WHERE user_id = $1;`

	findPatientByID = `SELECT ` + patientColumns + `
		FROM patients
		WHERE id = $1;`

	listPatients = `SELECT ` + patientColumns + `
		FROM patients
		ORDER BY created_at DESC;`

	deletePatientOwned = `DELETE FROM patients
		WHERE id = $1 AND user_id = $2;`

	// Deleting the owning user removes the intake record through the
	// patients.user_id ON DELETE CASCADE foreign key, so record and owner
	// disappear in one atomic statement.
	deletePatientCascade = `DELETE FROM users
		WHERE id = (SELECT user_id FROM patients WHERE id = $1);`
)

// buildUpdatePatientQuery builds a partial UPDATE for an intake record.
// Only non-nil fields of update are written. When ownerID is non-empty the
// WHERE clause additionally matches user_id, which is how the ownership
// policy reaches the database for non-admin callers.
//
// Returns [ErrBuildingSQLQuery] when the update carries no fields.
func buildUpdatePatientQuery(id, ownerID string, update models.PatientUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	builder := sq.Update("patients").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("NOW()"))

	if update.FirstName != nil {
		builder = builder.Set("first_name", *update.FirstName)
	}
	if update.MiddleInitial != nil {
		builder = builder.Set("middle_initial", *update.MiddleInitial)
	}
	if update.LastName != nil {
		builder = builder.Set("last_name", *update.LastName)
	}
	if update.DateOfBirth != nil {
		builder = builder.Set("date_of_birth", *update.DateOfBirth)
	}
	if update.PhoneNumber != nil {
		builder = builder.Set("phone_number", *update.PhoneNumber)
	}
	if update.Gender != nil {
		builder = builder.Set("gender", *update.Gender)
	}
	if update.Address != nil {
		builder = builder.Set("address", *update.Address)
	}
	if update.Allergies != nil {
		builder = builder.Set("allergies", *update.Allergies)
	}
	if update.Illnesses != nil {
		builder = builder.Set("illnesses", *update.Illnesses)
	}
	if update.HasInsurance != nil {
		builder = builder.Set("has_insurance", *update.HasInsurance)
	}
	if update.InsuranceProvider != nil {
		builder = builder.Set("insurance_provider", *update.InsuranceProvider)
	}
	if update.InsuranceMemberNumber != nil {
		builder = builder.Set("insurance_member_number", *update.InsuranceMemberNumber)
	}

	builder = builder.Where(sq.Eq{"id": id})
	if ownerID != "" {
		builder = builder.Where(sq.Eq{"user_id": ownerID})
	}

	builder = builder.Suffix("RETURNING " + patientColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
