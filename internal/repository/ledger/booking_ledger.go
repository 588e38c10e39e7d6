// File: internal/repository/ledger/booking_ledger.go
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-medisen/internal/domain"
)

// BookingLedger persists doctor appointment requests.
type BookingLedger struct {
	log    *Log[domain.Booking]
	logger Logger
	now    func() time.Time
	newID  func() string
}

func NewBookingLedger(store Store, logger Logger) *BookingLedger {
	return &BookingLedger{
		log:    NewLog[domain.Booking](store, BookingLog),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (l *BookingLedger) Append(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if err := b.IsValid(); err != nil {
		return domain.Booking{}, err
	}

	b.DoctorRef = strings.TrimSpace(b.DoctorRef)
	b.RequesterName = strings.TrimSpace(b.RequesterName)
	b.Contact = strings.TrimSpace(b.Contact)
	b.ID = l.newID()
	b.CreatedAt = l.now().UTC()

	if err := l.log.Append(ctx, b); err != nil {
		l.logger.Error("failed to append booking", "doctor", b.DoctorRef, "error", err)
		return domain.Booking{}, err
	}
	// requester contact details stay out of the logs
	l.logger.Info("booking recorded", "id", b.ID, "doctor", b.DoctorRef)
	return b, nil
}

func (l *BookingLedger) List(ctx context.Context) ([]domain.Booking, error) {
	return l.log.List(ctx)
}
