package service

import (
	"context"
	"fmt"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/models"
)

// patientService is the concrete implementation of PatientService.
type patientService struct {
	patientRepository store.PatientRepository
	idGenerator       IDGenerator
	logger            *logger.Logger
}

// NewPatientService constructs a new PatientService backed by the given
// PatientRepository.
func NewPatientService(patientRepository store.PatientRepository, idGenerator IDGenerator, logger *logger.Logger) PatientService {
	return &patientService{
		patientRepository: patientRepository,
		idGenerator:       idGenerator,
		logger:            logger,
	}
}

// CreatePatient validates and persists the intake record for owner.
//
// Ownership and contact identity are snapshotted from the authenticated
// caller, never from the submitted record, so a client cannot file a record
// under another account. One record per owner is enforced by the store's
// unique index; a second submission fails with
// store.ErrPatientAlreadyExists.
func (p *patientService) CreatePatient(ctx context.Context, owner models.User, patient models.Patient) (models.Patient, error) {
	log := logger.FromContext(ctx)

	if err := validatePatient(patient); err != nil {
		log.Err(err).Str("owner", owner.ID).Msg("invalid patient data provided")
		return models.Patient{}, err
	}

	patient.ID = p.idGenerator.Generate()
	patient.UserID = owner.ID
	patient.Username = owner.Username
	patient.Email = owner.Email
	if patient.Allergies == nil {
		patient.Allergies = models.StringList{}
	}
	if patient.Illnesses == nil {
		patient.Illnesses = models.StringList{}
	}

	createdPatient, err := p.patientRepository.CreatePatient(ctx, patient)
	if err != nil {
		log.Err(err).Str("owner", owner.ID).Msg("patient creation ended with error")
		return models.Patient{}, fmt.Errorf("patient creation ended with error: %w", err)
	}

	return createdPatient, nil
}

// GetOwnPatient returns the intake record owned by ownerID, or
// store.ErrPatientNotFound if the caller has not submitted one.
func (p *patientService) GetOwnPatient(ctx context.Context, ownerID string) (models.Patient, error) {
	return p.patientRepository.FindPatientByOwner(ctx, ownerID)
}

// UpdateOwnPatient applies a partial update to the record identified by id,
// but only if it is owned by ownerID. A record owned by someone else is
// indistinguishable from an absent one: both yield
// store.ErrPatientNotFound.
func (p *patientService) UpdateOwnPatient(ctx context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error) {
	if err := validatePatientUpdate(update); err != nil {
		return models.Patient{}, err
	}

	return p.patientRepository.UpdatePatient(ctx, id, ownerID, update)
}

// DeleteOwnPatient removes the record identified by id if it is owned by
// ownerID. Non-owned and absent records both yield
// store.ErrPatientNotFound.
func (p *patientService) DeleteOwnPatient(ctx context.Context, id, ownerID string) error {
	return p.patientRepository.DeletePatientOwned(ctx, id, ownerID)
}

// ListPatients returns every intake record, newest first. Admin only; the
// caller's role is enforced at the transport layer.
func (p *patientService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return p.patientRepository.ListPatients(ctx)
}

// GetPatient returns the record identified by id regardless of owner.
func (p *patientService) GetPatient(ctx context.Context, id string) (models.Patient, error) {
	return p.patientRepository.FindPatientByID(ctx, id)
}

// UpdatePatient applies a partial update to any record, regardless of
// owner.
func (p *patientService) UpdatePatient(ctx context.Context, id string, update models.PatientUpdate) (models.Patient, error) {
	if err := validatePatientUpdate(update); err != nil {
		return models.Patient{}, err
	}

	return p.patientRepository.UpdatePatient(ctx, id, "", update)
}

// DeletePatient removes the record identified by id together with the
// account that owns it. The owning user row is deleted and the record
// follows through the cascading foreign key, making the removal atomic.
func (p *patientService) DeletePatient(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := p.patientRepository.DeletePatientCascade(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("patient cascade deletion ended with error")
		return err
	}

	return nil
}

// validatePatient checks the required intake fields on submission.
func validatePatient(patient models.Patient) error {
	switch "" {
	case patient.FirstName, patient.LastName, patient.PhoneNumber, patient.Address:
		return ErrInvalidDataProvided
	}
	if patient.DateOfBirth.IsZero() {
		return ErrInvalidDataProvided
	}

	return validateGender(patient.Gender)
}

// validatePatientUpdate rejects empty updates and invalid gender values.
func validatePatientUpdate(update models.PatientUpdate) error {
	if update.IsEmpty() {
		return ErrInvalidDataProvided
	}
	if update.Gender != nil {
		return validateGender(*update.Gender)
	}

	return nil
}

func validateGender(gender string) error {
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	default:
		return ErrInvalidGender
	}
}
