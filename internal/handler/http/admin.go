package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/utils"
	"github.com/clinicore/clinic-registry/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	patients, err := h.services.PatientService.ListPatients(ctx)
	if err != nil {
		log.Err(err).Msg("patient records listing failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	utils.WriteJSON(w, patients, http.StatusOK)
}

func (h *Handler) getPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	patient, err := h.services.PatientService.GetPatient(ctx, id)
	if err != nil {
		log.Err(err).Str("id", id).Msg("patient record lookup failed")
		writeStatusError(w, err)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}

func (h *Handler) updatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var update models.PatientUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updatePatient").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	updatedPatient, err := h.services.PatientService.UpdatePatient(ctx, id, update)
	if err != nil {
		log.Err(err).Str("id", id).Msg("patient record update failed")
		writeStatusError(w, err)
		return
	}

	utils.WriteJSON(w, models.PatientResponse{
		Message: "Patient information updated successfully",
		Patient: updatedPatient,
	}, http.StatusOK)
}

// deletePatient removes an intake record together with the account that owns
// it. The account row is the deletion target; the record follows through the
// cascading foreign key.
func (h *Handler) deletePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	if err := h.services.PatientService.DeletePatient(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("patient record deletion failed")
		writeStatusError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
