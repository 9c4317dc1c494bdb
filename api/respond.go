package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"fortuna/domain/entities"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes the payload with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps domain sentinel errors onto HTTP status codes.
// Unknown errors surface as 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, entities.ErrInvalidBet),
		errors.Is(err, entities.ErrInvalidAction):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrRoundNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrRoundSettled),
		errors.Is(err, entities.ErrStreakAlreadyClaimed):
		status = http.StatusConflict
	default:
		log.WithError(err).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
