// File: internal/services/triage/dependencies.go
package triage

import (
	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/ai"
	"github.com/iyunix/go-medisen/internal/services/assistant"
	"github.com/iyunix/go-medisen/internal/services/classifier"
	"github.com/iyunix/go-medisen/internal/services/doctor"
	"github.com/iyunix/go-medisen/internal/services/selection"
)

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Dependencies are shared by every session. Registry may still be filled
// after sessions exist.
type Dependencies struct {
	Vocabulary      *selection.Vocabulary
	Classifier      classifier.Classifier
	Completion      ai.CompletionProvider
	AssistantConfig *assistant.Config
	Registry        *doctor.Registry
	Matcher         *doctor.Matcher
	SampleSize      int
	DefaultCity     string
	Logger          Logger
}

func (d *Dependencies) Validate() error {
	switch {
	case d.Vocabulary == nil:
		return domain.NewValidationError("triage_dependencies", "vocabulary", "is required")
	case d.Classifier == nil:
		return domain.NewValidationError("triage_dependencies", "classifier", "is required")
	case d.Completion == nil:
		return domain.NewValidationError("triage_dependencies", "completion", "is required")
	case d.Matcher == nil:
		return domain.NewValidationError("triage_dependencies", "matcher", "is required")
	case d.Logger == nil:
		return domain.NewValidationError("triage_dependencies", "logger", "is required")
	}
	if d.Registry == nil {
		d.Registry = doctor.NewRegistry(nil)
	}
	if d.AssistantConfig == nil {
		d.AssistantConfig = assistant.DefaultConfig()
	}
	return d.AssistantConfig.Validate()
}
