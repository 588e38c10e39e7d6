// File: internal/services/triage_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/repository/ledger"
	"github.com/iyunix/go-medisen/internal/services/triage"
)

var ErrSessionNotFound = errors.New("triage session not found")

const DefaultSuggestionLimit = 10

// TriageService owns the per-user triage sessions and the shared ledgers.
type TriageService struct {
	deps     *triage.Dependencies
	feedback *ledger.FeedbackLedger
	bookings *ledger.BookingLedger
	logger   Logger

	mu       sync.RWMutex
	sessions map[string]*triage.Session
}

func NewTriageService(
	deps *triage.Dependencies,
	feedback *ledger.FeedbackLedger,
	bookings *ledger.BookingLedger,
	logger Logger,
) (*TriageService, error) {
	if deps == nil {
		return nil, domain.NewValidationError("constructor", "dependencies", "triage dependencies are required")
	}
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if feedback == nil || bookings == nil {
		return nil, domain.NewValidationError("constructor", "ledger", "feedback and booking ledgers are required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &TriageService{
		deps:     deps,
		feedback: feedback,
		bookings: bookings,
		logger:   logger,
		sessions: make(map[string]*triage.Session),
	}, nil
}

// Session management
func (s *TriageService) CreateSession() *triage.Session {
	session := triage.NewSession(uuid.NewString(), s.deps)
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.logger.Info("triage session created", "session_id", session.ID)
	return session
}

func (s *TriageService) Session(id string) (*triage.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// PruneIdle drops sessions not seen for maxIdle and returns how many were dropped.
func (s *TriageService) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for id, session := range s.sessions {
		if session.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	if pruned > 0 {
		s.logger.Info("pruned idle triage sessions", "count", pruned)
	}
	return pruned
}

// SuggestSymptoms lists the whole vocabulary for an empty query.
func (s *TriageService) SuggestSymptoms(query string, limit int) []domain.SymptomToken {
	if strings.TrimSpace(query) == "" {
		return s.deps.Vocabulary.All()
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return s.deps.Vocabulary.Suggest(query, limit)
}

func (s *TriageService) Registry() []domain.Doctor {
	return append([]domain.Doctor(nil), s.deps.Registry.Doctors()...)
}

// Ledgers
func (s *TriageService) SubmitFeedback(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	return s.feedback.Append(ctx, fb)
}

// ListFeedback returns feedback newest first.
func (s *TriageService) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	records, err := s.feedback.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// BookDoctor records a booking for a doctor listed in the directory.
func (s *TriageService) BookDoctor(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if err := b.IsValid(); err != nil {
		return domain.Booking{}, err
	}
	if _, ok := s.deps.Registry.Lookup(strings.TrimSpace(b.DoctorRef)); !ok {
		return domain.Booking{}, domain.NewValidationError("book_doctor", "doctor_ref", "doctor is not in the directory")
	}
	return s.bookings.Append(ctx, b)
}

func (s *TriageService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}
