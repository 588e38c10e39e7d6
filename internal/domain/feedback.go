// File: internal/domain/feedback.go
package domain

import (
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a user rating kept in the local feedback ledger.
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"` // optional, shown as "Anonymous" when empty
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) IsValid() error {
	if f.Rating < MinRating || f.Rating > MaxRating {
		return NewValidationError("feedback", "rating", "rating must be between 1 and 5")
	}
	if strings.TrimSpace(f.Comment) == "" {
		return NewValidationError("feedback", "comment", "comment is required")
	}
	return nil
}

// DisplayName returns the author name or "Anonymous".
func (f *Feedback) DisplayName() string {
	if strings.TrimSpace(f.Name) == "" {
		return "Anonymous"
	}
	return f.Name
}
