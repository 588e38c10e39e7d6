// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-medisen/internal/middleware"
	"github.com/iyunix/go-medisen/internal/ratelimit"
)

// NewRouter wires every route. submitLimiter guards feedback and booking submissions.
func NewRouter(triageHandler *TriageHandler, ledgerHandler *LedgerHandler, logHandler *LogHandler, submitLimiter *ratelimit.MemoryRateLimiter, logger Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RecoverPanic(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/log", logHandler.LogFrontendEvent).Methods("POST")
	api.HandleFunc("/symptoms", triageHandler.SuggestSymptoms).Methods("GET")

	api.HandleFunc("/sessions", triageHandler.CreateSession).Methods("POST")
	sessions := api.PathPrefix("/sessions/{id}").Subrouter()
	sessions.HandleFunc("", triageHandler.GetSession).Methods("GET")
	sessions.HandleFunc("/symptoms", triageHandler.UpdateSymptoms).Methods("PUT")
	sessions.HandleFunc("/predict", triageHandler.Predict).Methods("POST")
	sessions.HandleFunc("/pivot", triageHandler.Pivot).Methods("POST")
	sessions.HandleFunc("/assistant/messages", triageHandler.SendAssistantMessage).Methods("POST")
	sessions.HandleFunc("/assistant/close", triageHandler.CloseAssistant).Methods("POST")
	sessions.HandleFunc("/assistant/reset", triageHandler.ResetAssistant).Methods("POST")
	sessions.HandleFunc("/assistant/transcript", triageHandler.GetTranscript).Methods("GET")
	sessions.HandleFunc("/doctors/search", triageHandler.SearchDoctors).Methods("POST")
	sessions.HandleFunc("/doctors/close", triageHandler.CloseDoctors).Methods("POST")

	limit := middleware.RateLimitMiddleware
	api.Handle("/feedback", limit(submitLimiter, "feedback", logger)(http.HandlerFunc(ledgerHandler.SubmitFeedback))).Methods("POST")
	api.HandleFunc("/feedback", ledgerHandler.ListFeedback).Methods("GET")
	api.Handle("/bookings", limit(submitLimiter, "bookings", logger)(http.HandlerFunc(ledgerHandler.BookDoctor))).Methods("POST")
	api.HandleFunc("/bookings", ledgerHandler.ListBookings).Methods("GET")

	return router
}
