// File: internal/repository/ledger/feedback_ledger.go
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-medisen/internal/domain"
)

// FeedbackLedger persists user feedback.
type FeedbackLedger struct {
	log    *Log[domain.Feedback]
	logger Logger
	now    func() time.Time
	newID  func() string
}

func NewFeedbackLedger(store Store, logger Logger) *FeedbackLedger {
	return &FeedbackLedger{
		log:    NewLog[domain.Feedback](store, FeedbackLog),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Append validates fb and stores it. Invalid feedback never reaches the store.
func (l *FeedbackLedger) Append(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	if err := fb.IsValid(); err != nil {
		return domain.Feedback{}, err
	}

	fb.Name = strings.TrimSpace(fb.Name)
	fb.ID = l.newID()
	fb.CreatedAt = l.now().UTC()

	if err := l.log.Append(ctx, fb); err != nil {
		l.logger.Error("failed to append feedback", "error", err)
		return domain.Feedback{}, err
	}
	l.logger.Info("feedback recorded", "id", fb.ID, "rating", fb.Rating)
	return fb, nil
}

// List returns feedback oldest first.
func (l *FeedbackLedger) List(ctx context.Context) ([]domain.Feedback, error) {
	return l.log.List(ctx)
}
