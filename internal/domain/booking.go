// File: internal/domain/booking.go
package domain

import (
	"strings"
	"time"
)

// Booking is a doctor appointment request kept in the local bookings ledger.
type Booking struct {
	ID            string    `json:"id"`
	DoctorRef     string    `json:"doctor_ref"` // doctor name as listed in the directory
	RequesterName string    `json:"requester_name"`
	Contact       string    `json:"contact"`
	PreferredAt   time.Time `json:"preferred_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsValid checks the fields a booking cannot be accepted without.
func (b *Booking) IsValid() error {
	if strings.TrimSpace(b.DoctorRef) == "" {
		return NewValidationError("booking", "doctor", "a doctor must be selected")
	}
	if strings.TrimSpace(b.RequesterName) == "" {
		return NewValidationError("booking", "requester_name", "name is required")
	}
	if strings.TrimSpace(b.Contact) == "" {
		return NewValidationError("booking", "contact", "contact is required")
	}
	if b.PreferredAt.IsZero() {
		return NewValidationError("booking", "preferred_at", "preferred date and time is required")
	}
	return nil
}
