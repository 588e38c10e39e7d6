// File: internal/services/triage/session.go
package triage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/assistant"
	"github.com/iyunix/go-medisen/internal/services/doctor"
	"github.com/iyunix/go-medisen/internal/services/prediction"
	"github.com/iyunix/go-medisen/internal/services/presenter"
	"github.com/iyunix/go-medisen/internal/services/selection"
)

// View is everything the presentation layer needs to draw one session.
type View struct {
	ID        string                 `json:"id"`
	Selection []domain.SymptomToken  `json:"selection"`
	Results   presenter.ResultsPanel `json:"results"`
	Assistant assistant.View         `json:"assistant"`
	Doctors   doctor.FinderView      `json:"doctors"`
}

// Session ties the panels of one user together. Panels never call each
// other; every handoff goes through Dispatch.
type Session struct {
	ID          string
	Selector    *selection.Selector
	Coordinator *prediction.Coordinator
	Assistant   *assistant.Session
	Finder      *doctor.Finder

	logger Logger

	mu       sync.Mutex
	lastSeen time.Time
}

func NewSession(id string, deps *Dependencies) *Session {
	return &Session{
		ID:          id,
		Selector:    selection.NewSelector(deps.Vocabulary),
		Coordinator: prediction.NewCoordinator(deps.Classifier, deps.Logger),
		Assistant:   assistant.NewSession(deps.Completion, deps.AssistantConfig, deps.Logger),
		Finder:      doctor.NewFinder(deps.Registry, deps.Matcher, deps.SampleSize, deps.DefaultCity),
		logger:      deps.Logger,
		lastSeen:    time.Now(),
	}
}

// Predict submits the current selection. The selection is kept afterwards.
func (s *Session) Predict(ctx context.Context) (prediction.Snapshot, error) {
	s.touch()
	return s.Coordinator.Submit(ctx, s.Selector.Tokens())
}

// Pivot derives the event for result index and dispatches it.
func (s *Session) Pivot(kind PivotKind, index int) (PivotEvent, error) {
	s.touch()
	r, ok := s.Coordinator.Result(index)
	if !ok {
		return PivotEvent{}, domain.NewValidationError("pivot", "index", fmt.Sprintf("no result at index %d", index))
	}
	ev, err := EventFor(kind, r)
	if err != nil {
		return PivotEvent{}, err
	}
	return ev, s.Dispatch(ev)
}

// Dispatch routes a pivot event to its panel.
func (s *Session) Dispatch(ev PivotEvent) error {
	switch ev.Kind {
	case PivotAssistant:
		s.Assistant.Open(ev.Context)
	case PivotDoctors:
		s.Finder.Open(ev.Context)
	default:
		return domain.NewValidationError("pivot", "kind", "unknown pivot kind "+string(ev.Kind))
	}
	s.logger.Debug("pivot dispatched", "session_id", s.ID, "kind", string(ev.Kind))
	return nil
}

func (s *Session) View() View {
	s.touch()
	return View{
		ID:        s.ID,
		Selection: s.Selector.Tokens(),
		Results:   presenter.Present(s.Coordinator.Snapshot()),
		Assistant: s.Assistant.View(),
		Doctors:   s.Finder.View(),
	}
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}
