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

// patientRepository is the PostgreSQL-backed implementation of
// [PatientRepository]. It executes all intake-record CRUD operations against
// the "patients" table using the shared [*DB] connection.
//
// Every method obtains a context-scoped logger via [logger.FromContext] so
// that all database interactions are traced with structured fields.
type patientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPatientRepository constructs a [PatientRepository] backed by the
// provided database connection and logger.
func NewPatientRepository(db *DB, logger *logger.Logger) PatientRepository {
	logger.Debug().Msg("creating patient repository")
	return &patientRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePatient persists a new intake record and returns the fully populated
// [models.Patient] with server-assigned timestamps.
//
// The unique index on user_id is the one-record-per-owner invariant: a
// second insert for the same owner fails atomically at the database.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrPatientAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *patientRepository) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPatient,
		patient.ID,
		patient.UserID,
		patient.Username,
		patient.Email,
		patient.FirstName,
		patient.MiddleInitial,
		patient.LastName,
		patient.DateOfBirth,
		patient.PhoneNumber,
		patient.Gender,
		patient.Address,
		patient.Allergies,
		patient.Illnesses,
		patient.HasInsurance,
		patient.InsuranceProvider,
		patient.InsuranceMemberNumber,
	)

	created, err := scanPatient(row)
	if err != nil {
		log.Err(err).Str("func", "patientRepository.CreatePatient").Str("user_id", patient.UserID).Msg("error inserting patient")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Patient{}, ErrPatientAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Patient{}, ErrUserNotFound
		}

		if r.db.errorClassifier.Classify(err) == Retryable {
			log.Warn().Str("func", "patientRepository.CreatePatient").Msg("transient database error, insert may be retried")
		}

		return models.Patient{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindPatientByOwner retrieves the intake record owned by the given user.
// Returns [ErrPatientNotFound] when the user has not submitted one.
func (r *patientRepository) FindPatientByOwner(ctx context.Context, userID string) (models.Patient, error) {
	return r.findOne(ctx, findPatientByOwner, userID, "patientRepository.FindPatientByOwner")
}

// FindPatientByID retrieves an intake record by its own identifier,
// regardless of owner. Callers are expected to have passed the admin gate.
func (r *patientRepository) FindPatientByID(ctx context.Context, id string) (models.Patient, error) {
	return r.findOne(ctx, findPatientByID, id, "patientRepository.FindPatientByID")
}

// ListPatients retrieves every intake record, newest first.
// Returns an empty slice when no records exist.
func (r *patientRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPatients)
	if err != nil {
		log.Err(err).Str("func", "patientRepository.ListPatients").Msg("failed to execute query for listing patients")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Patient, 0, 50)

	for rows.Next() {
		patient, scanErr := scanPatient(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "patientRepository.ListPatients").Msg("failed to scan patient row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, patient)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "patientRepository.ListPatients").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// UpdatePatient applies a partial update built by [buildUpdatePatientQuery]
// and returns the updated record.
//
// A non-empty ownerID scopes the update to the caller's own record; a miss
// (absent record or foreign owner alike) surfaces as [ErrPatientNotFound].
func (r *patientRepository) UpdatePatient(ctx context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePatientQuery(id, ownerID, update)
	if err != nil {
		log.Err(err).Str("func", "patientRepository.UpdatePatient").Str("id", id).Msg("failed to build update query")
		return models.Patient{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	updated, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Patient{}, ErrPatientNotFound
		}

		log.Err(err).Str("func", "patientRepository.UpdatePatient").Str("id", id).Msg("error executing update")
		return models.Patient{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// DeletePatientOwned removes the record only when both id and owner match.
func (r *patientRepository) DeletePatientOwned(ctx context.Context, id, ownerID string) error {
	return r.deleteOne(ctx, deletePatientOwned, []any{id, ownerID}, "patientRepository.DeletePatientOwned")
}

// DeletePatientCascade removes the record's owning user; the foreign key
// cascade removes the record itself in the same statement.
func (r *patientRepository) DeletePatientCascade(ctx context.Context, id string) error {
	return r.deleteOne(ctx, deletePatientCascade, []any{id}, "patientRepository.DeletePatientCascade")
}

func (r *patientRepository) findOne(ctx context.Context, query, arg, op string) (models.Patient, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	patient, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Patient{}, ErrPatientNotFound
		}

		log.Err(err).Str("func", op).Msg("error scanning patient row")
		return models.Patient{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return patient, nil
}

func (r *patientRepository) deleteOne(ctx context.Context, query string, args []any, op string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", op).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		return ErrPatientNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (models.Patient, error) {
	var p models.Patient

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Username,
		&p.Email,
		&p.FirstName,
		&p.MiddleInitial,
		&p.LastName,
		&p.DateOfBirth,
		&p.PhoneNumber,
		&p.Gender,
		&p.Address,
		&p.Allergies,
		&p.Illnesses,
		&p.HasInsurance,
		&p.InsuranceProvider,
		&p.InsuranceMemberNumber,
		&p.RegistrationDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return models.Patient{}, err
	}

	return p, nil
}
