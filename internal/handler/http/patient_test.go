package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinicore/clinic-registry/internal/service"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock PatientService
// ─────────────────────────────────────────────

type mockPatientService struct {
	createPatientFn    func(ctx context.Context, owner models.User, patient models.Patient) (models.Patient, error)
	getOwnPatientFn    func(ctx context.Context, ownerID string) (models.Patient, error)
	updateOwnPatientFn func(ctx context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error)
	deleteOwnPatientFn func(ctx context.Context, id, ownerID string) error
	listPatientsFn     func(ctx context.Context) ([]models.Patient, error)
	getPatientFn       func(ctx context.Context, id string) (models.Patient, error)
	updatePatientFn    func(ctx context.Context, id string, update models.PatientUpdate) (models.Patient, error)
	deletePatientFn    func(ctx context.Context, id string) error
}

func (m *mockPatientService) CreatePatient(ctx context.Context, owner models.User, patient models.Patient) (models.Patient, error) {
	return m.createPatientFn(ctx, owner, patient)
}

func (m *mockPatientService) GetOwnPatient(ctx context.Context, ownerID string) (models.Patient, error) {
	return m.getOwnPatientFn(ctx, ownerID)
}

func (m *mockPatientService) UpdateOwnPatient(ctx context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error) {
	return m.updateOwnPatientFn(ctx, id, ownerID, update)
}

func (m *mockPatientService) DeleteOwnPatient(ctx context.Context, id, ownerID string) error {
	return m.deleteOwnPatientFn(ctx, id, ownerID)
}

func (m *mockPatientService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return m.listPatientsFn(ctx)
}

func (m *mockPatientService) GetPatient(ctx context.Context, id string) (models.Patient, error) {
	return m.getPatientFn(ctx, id)
}

func (m *mockPatientService) UpdatePatient(ctx context.Context, id string, update models.PatientUpdate) (models.Patient, error) {
	return m.updatePatientFn(ctx, id, update)
}

func (m *mockPatientService) DeletePatient(ctx context.Context, id string) error {
	return m.deletePatientFn(ctx, id)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// tokenAuth returns an AuthService mock whose Authenticate resolves
// well-known test tokens to fixture users.
func tokenAuth() *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, tokenString string) (models.User, error) {
			switch tokenString {
			case "patient-token":
				return patientUser, nil
			case "admin-token":
				return adminUser, nil
			default:
				return models.User{}, service.ErrTokenInvalid
			}
		},
	}
}

// doRequest routes a request through the full router, middleware included.
func doRequest(t *testing.T, patients service.PatientService, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := newHandlerWith(t, tokenAuth(), patients)
	router := h.Init()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	return rec
}

const validPatientBody = `{
	"first_name": "Bob",
	"last_name": "Smith",
	"date_of_birth": "1990-04-12T00:00:00Z",
	"phone_number": "555-0101",
	"gender": "Male",
	"address": "12 Main St",
	"allergies": ["penicillin"]
}`

// ─────────────────────────────────────────────
// POST /api/patients
// ─────────────────────────────────────────────

func TestCreatePatient_Handler_Success(t *testing.T) {
	patients := &mockPatientService{
		createPatientFn: func(_ context.Context, owner models.User, patient models.Patient) (models.Patient, error) {
			assert.Equal(t, patientUser.ID, owner.ID)
			patient.ID = "p-1"
			patient.UserID = owner.ID
			return patient, nil
		},
	}

	rec := doRequest(t, patients, http.MethodPost, "/api/patients", "patient-token", validPatientBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.PatientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "p-1", body.Patient.ID)
	assert.Equal(t, "Patient registered successfully", body.Message)
}

func TestCreatePatient_Handler_AlreadySubmitted(t *testing.T) {
	patients := &mockPatientService{
		createPatientFn: func(_ context.Context, _ models.User, _ models.Patient) (models.Patient, error) {
			return models.Patient{}, store.ErrPatientAlreadyExists
		},
	}

	rec := doRequest(t, patients, http.MethodPost, "/api/patients", "patient-token", validPatientBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreatePatient_Handler_NoToken(t *testing.T) {
	rec := doRequest(t, &mockPatientService{}, http.MethodPost, "/api/patients", "", validPatientBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePatient_Handler_InvalidGender(t *testing.T) {
	patients := &mockPatientService{
		createPatientFn: func(_ context.Context, _ models.User, _ models.Patient) (models.Patient, error) {
			return models.Patient{}, service.ErrInvalidGender
		},
	}

	rec := doRequest(t, patients, http.MethodPost, "/api/patients", "patient-token", validPatientBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// GET /api/patients/me
// ─────────────────────────────────────────────

func TestGetOwnPatient_Handler_Success(t *testing.T) {
	patients := &mockPatientService{
		getOwnPatientFn: func(_ context.Context, ownerID string) (models.Patient, error) {
			assert.Equal(t, patientUser.ID, ownerID)
			return models.Patient{ID: "p-1", UserID: ownerID}, nil
		},
	}

	rec := doRequest(t, patients, http.MethodGet, "/api/patients/me", "patient-token", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "p-1", body.ID)
}

func TestGetOwnPatient_Handler_NoneSubmitted(t *testing.T) {
	patients := &mockPatientService{
		getOwnPatientFn: func(_ context.Context, _ string) (models.Patient, error) {
			return models.Patient{}, store.ErrPatientNotFound
		},
	}

	rec := doRequest(t, patients, http.MethodGet, "/api/patients/me", "patient-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestGetOwnPatient_Handler_StoreFailureIsNotDisclosed verifies that a
// low-level query failure is reported as a bare 500: the wrapped driver
// diagnostic stays in the logs and out of the response body.
func TestGetOwnPatient_Handler_StoreFailureIsNotDisclosed(t *testing.T) {
	patients := &mockPatientService{
		getOwnPatientFn: func(_ context.Context, _ string) (models.Patient, error) {
			return models.Patient{}, fmt.Errorf("%w: pq: relation %q does not exist", store.ErrExecutingQuery, "patients")
		},
	}

	rec := doRequest(t, patients, http.MethodGet, "/api/patients/me", "patient-token", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "relation")
}

// ─────────────────────────────────────────────
// PATCH /api/patients/{id}
// ─────────────────────────────────────────────

func TestUpdateOwnPatient_Handler_Success(t *testing.T) {
	patients := &mockPatientService{
		updateOwnPatientFn: func(_ context.Context, id, ownerID string, update models.PatientUpdate) (models.Patient, error) {
			assert.Equal(t, "p-1", id)
			assert.Equal(t, patientUser.ID, ownerID, "update must be scoped to the authenticated caller")
			require.NotNil(t, update.PhoneNumber)
			assert.Equal(t, "555-0202", *update.PhoneNumber)
			return models.Patient{ID: id}, nil
		},
	}

	rec := doRequest(t, patients, http.MethodPatch, "/api/patients/p-1", "patient-token", `{"phone_number":"555-0202"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestUpdateOwnPatient_Handler_ForeignRecord verifies that a record owned by
// another user surfaces as 404, identical to an absent record.
func TestUpdateOwnPatient_Handler_ForeignRecord(t *testing.T) {
	patients := &mockPatientService{
		updateOwnPatientFn: func(_ context.Context, _, _ string, _ models.PatientUpdate) (models.Patient, error) {
			return models.Patient{}, store.ErrPatientNotFound
		},
	}

	rec := doRequest(t, patients, http.MethodPatch, "/api/patients/someone-elses", "patient-token", `{"phone_number":"555-0202"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// DELETE /api/patients/{id}
// ─────────────────────────────────────────────

func TestDeleteOwnPatient_Handler_Success(t *testing.T) {
	patients := &mockPatientService{
		deleteOwnPatientFn: func(_ context.Context, id, ownerID string) error {
			assert.Equal(t, "p-1", id)
			assert.Equal(t, patientUser.ID, ownerID)
			return nil
		},
	}

	rec := doRequest(t, patients, http.MethodDelete, "/api/patients/p-1", "patient-token", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteOwnPatient_Handler_NotFound(t *testing.T) {
	patients := &mockPatientService{
		deleteOwnPatientFn: func(_ context.Context, _, _ string) error {
			return store.ErrPatientNotFound
		},
	}

	rec := doRequest(t, patients, http.MethodDelete, "/api/patients/p-1", "patient-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
