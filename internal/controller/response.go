// internal/controller/response.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
)

// APIResponse is the envelope every JSON endpoint answers with, success or
// failure. CSV export and image streaming are the only exceptions.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, APIResponse{Success: true, Message: message, Data: data})
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Success: false, Error: message})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal fault: full detail goes to the
// log, a generic message goes to the caller.
func respondDomainError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsInvalidState(err), apperrors.IsConflict(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case apperrors.IsGone(err):
		respondError(w, http.StatusGone, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized. Please login.")
	default:
		log.Errorw("internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
