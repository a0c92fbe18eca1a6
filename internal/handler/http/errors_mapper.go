package http

import (
	"errors"
	"net/http"

	"github.com/clinicore/clinic-registry/internal/service"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidGender:       http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrTokenInvalid:        http.StatusUnauthorized,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrUserAlreadyExists:    http.StatusConflict,
	store.ErrUserNotFound:         http.StatusNotFound,
	store.ErrPatientAlreadyExists: http.StatusConflict,
	store.ErrPatientNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeStatusError maps err onto its HTTP status and writes the failure
// body. Domain sentinels carry caller-safe texts and pass through verbatim;
// anything that resolves to 500 answers with the bare status text so that
// store and driver diagnostics stay in server-side logs.
func writeStatusError(w http.ResponseWriter, err error) {
	message := err.Error()
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}
	utils.WriteError(w, message, status)
}
