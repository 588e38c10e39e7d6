// File: internal/handlers/ledger_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services"
)

type LedgerHandler struct {
	Service *services.TriageService
	Logger  Logger
}

func NewLedgerHandler(svc *services.TriageService, logger Logger) *LedgerHandler {
	return &LedgerHandler{Service: svc, Logger: logger}
}

type feedbackRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *LedgerHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	fb, err := h.Service.SubmitFeedback(r.Context(), domain.Feedback{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "submit_feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}

func (h *LedgerHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListFeedback(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "list_feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type bookingRequest struct {
	DoctorRef     string    `json:"doctor_ref"`
	RequesterName string    `json:"requester_name"`
	Contact       string    `json:"contact"`
	PreferredAt   time.Time `json:"preferred_at"`
}

func (h *LedgerHandler) BookDoctor(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	b, err := h.Service.BookDoctor(r.Context(), domain.Booking{
		DoctorRef:     req.DoctorRef,
		RequesterName: req.RequesterName,
		Contact:       req.Contact,
		PreferredAt:   req.PreferredAt,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "book_doctor", err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *LedgerHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "list_bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
