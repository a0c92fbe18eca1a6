package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/utils"
	"github.com/clinicore/clinic-registry/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity found in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		log.Err(err).Str("func", "*Handler.createPatient").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdPatient, err := h.services.PatientService.CreatePatient(ctx, owner, patient)
	if err != nil {
		log.Err(err).Str("owner", owner.ID).Msg("patient registration failed")
		writeStatusError(w, err)
		return
	}

	utils.WriteJSON(w, models.PatientResponse{
		Message: "Patient registered successfully",
		Patient: createdPatient,
	}, http.StatusCreated)
}

func (h *Handler) getOwnPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity found in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	patient, err := h.services.PatientService.GetOwnPatient(ctx, owner.ID)
	if err != nil {
		log.Err(err).Str("owner", owner.ID).Msg("own patient record lookup failed")
		writeStatusError(w, err)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}

func (h *Handler) updateOwnPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity found in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.PatientUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateOwnPatient").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	updatedPatient, err := h.services.PatientService.UpdateOwnPatient(ctx, id, owner.ID, update)
	if err != nil {
		log.Err(err).Str("id", id).Str("owner", owner.ID).Msg("own patient record update failed")
		writeStatusError(w, err)
		return
	}

	utils.WriteJSON(w, models.PatientResponse{
		Message: "Patient information updated successfully",
		Patient: updatedPatient,
	}, http.StatusOK)
}

func (h *Handler) deleteOwnPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity found in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.services.PatientService.DeleteOwnPatient(ctx, id, owner.ID); err != nil {
		log.Err(err).Str("id", id).Str("owner", owner.ID).Msg("own patient record deletion failed")
		writeStatusError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
