// File: internal/handlers/triage_handler.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services"
	"github.com/iyunix/go-medisen/internal/services/presenter"
	"github.com/iyunix/go-medisen/internal/services/selection"
	"github.com/iyunix/go-medisen/internal/services/triage"
)

const SessionHeader = "X-Session-ID"

type TriageHandler struct {
	Service *services.TriageService
	Logger  Logger
}

func NewTriageHandler(svc *services.TriageService, logger Logger) *TriageHandler {
	return &TriageHandler{Service: svc, Logger: logger}
}

// session resolves the {id} route variable.
func (h *TriageHandler) session(w http.ResponseWriter, r *http.Request) (*triage.Session, bool) {
	s, err := h.Service.Session(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.Logger, "session", err)
		return nil, false
	}
	return s, true
}

func (h *TriageHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.Service.CreateSession()
	w.Header().Set(SessionHeader, s.ID)
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *TriageHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// SuggestSymptoms handles GET /api/symptoms?q=&limit=
func (h *TriageHandler) SuggestSymptoms(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	suggestions := h.Service.SuggestSymptoms(r.URL.Query().Get("q"), limit)
	out := make([]map[string]string, 0, len(suggestions))
	for _, tok := range suggestions {
		out = append(out, map[string]string{"value": string(tok), "label": selection.Label(tok)})
	}
	writeJSON(w, http.StatusOK, out)
}

type selectionRequest struct {
	Add     []domain.SymptomToken `json:"add,omitempty"`
	Remove  []domain.SymptomToken `json:"remove,omitempty"`
	Replace []domain.SymptomToken `json:"replace,omitempty"`
	Clear   bool                  `json:"clear,omitempty"`
}

// UpdateSymptoms applies clear, replace, remove, then add as one edit. An
// invalid token rejects the whole request.
func (h *TriageHandler) UpdateSymptoms(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	edit := selection.Edit{Clear: req.Clear, Replace: req.Replace, Remove: req.Remove, Add: req.Add}
	if err := s.Selector.Apply(edit); err != nil {
		writeServiceError(w, h.Logger, "update_symptoms", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"selection": s.Selector.Tokens()})
}

// Predict blocks until the classifier answers and returns the session view.
// A client that disconnects does not cancel the submission; the outcome stays
// in the session for the next poll.
func (h *TriageHandler) Predict(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := s.Predict(context.WithoutCancel(r.Context())); err != nil {
		writeServiceError(w, h.Logger, "predict", err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

type pivotRequest struct {
	Kind  triage.PivotKind `json:"kind"`
	Index int              `json:"index"`
}

func (h *TriageHandler) Pivot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req pivotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ev, err := s.Pivot(req.Kind, req.Index)
	if err != nil {
		writeServiceError(w, h.Logger, "pivot", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"event": ev, "session": s.View()})
}

// SendAssistantMessage blocks for the reply. Completion failures come back
// as an apology turn with status 200. The reply is recorded even if the
// client has gone away.
func (h *TriageHandler) SendAssistantMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	reply, err := s.Assistant.Send(context.WithoutCancel(r.Context()), req.Message)
	if err != nil {
		writeServiceError(w, h.Logger, "assistant_send", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reply": reply, "assistant": s.Assistant.View()})
}

func (h *TriageHandler) CloseAssistant(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Assistant.Close()
	writeJSON(w, http.StatusOK, s.Assistant.View())
}

func (h *TriageHandler) ResetAssistant(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Assistant.Reset()
	writeJSON(w, http.StatusOK, s.Assistant.View())
}

// GetTranscript returns the raw turns, or rendered HTML with ?format=html.
func (h *TriageHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	transcript := s.Assistant.Transcript()
	if r.URL.Query().Get("format") != "html" {
		writeJSON(w, http.StatusOK, transcript)
		return
	}
	rendered, err := presenter.RenderTranscript(transcript)
	if err != nil {
		writeServiceError(w, h.Logger, "render_transcript", err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

// SearchDoctors optionally switches city, then samples matching doctors.
func (h *TriageHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		City string `json:"city,omitempty"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.City != "" {
		if err := s.Finder.SetCity(req.City); err != nil {
			writeServiceError(w, h.Logger, "doctor_search", err)
			return
		}
	}
	s.Finder.Search()
	writeJSON(w, http.StatusOK, s.Finder.View())
}

func (h *TriageHandler) CloseDoctors(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Finder.Close()
	writeJSON(w, http.StatusOK, s.Finder.View())
}
