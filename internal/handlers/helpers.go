// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services"
	"github.com/iyunix/go-medisen/internal/services/assistant"
	"github.com/iyunix/go-medisen/internal/services/prediction"
)

const maxBodyBytes = 64 << 10

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a bounded JSON body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, logger Logger, op string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, services.ErrSessionNotFound):
		writeError(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, assistant.ErrReplyPending):
		writeError(w, "Please wait for the assistant to reply", http.StatusConflict)
	case errors.Is(err, assistant.ErrSessionReset):
		writeError(w, "The conversation was reset", http.StatusConflict)
	case errors.Is(err, prediction.ErrStale):
		writeError(w, "A newer prediction was requested", http.StatusConflict)
	default:
		logger.Error("request failed", "operation", op, "error", err)
		writeError(w, "Something went wrong on our end.", http.StatusInternalServerError)
	}
}
