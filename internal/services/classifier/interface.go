// File: internal/services/classifier/interface.go
package classifier

import (
	"context"

	"github.com/iyunix/go-medisen/internal/domain"
)

// Classifier maps a symptom selection to ranked disease candidates.
type Classifier interface {
	Classify(ctx context.Context, symptoms []domain.SymptomToken) ([]domain.PredictionResult, error)
}
