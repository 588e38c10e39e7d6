// File: internal/handlers/log_handler.go
package handlers

import (
	"net/http"
	"strings"
)

// FrontendLogPayload defines the structure for logs coming from the browser.
type FrontendLogPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

type LogHandler struct {
	Logger Logger
}

func NewLogHandler(logger Logger) *LogHandler {
	return &LogHandler{Logger: logger}
}

// LogFrontendEvent forwards a browser log line to the server log at its level.
func (h *LogHandler) LogFrontendEvent(w http.ResponseWriter, r *http.Request) {
	var payload FrontendLogPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	kv := []interface{}{"source", "client", "message", payload.Message, "context", payload.Context}
	switch strings.ToLower(payload.Level) {
	case "error":
		h.Logger.Error("CLIENT_LOG", kv...)
	case "warn", "warning":
		h.Logger.Warn("CLIENT_LOG", kv...)
	case "debug":
		h.Logger.Debug("CLIENT_LOG", kv...)
	default:
		h.Logger.Info("CLIENT_LOG", kv...)
	}
	w.WriteHeader(http.StatusNoContent)
}
