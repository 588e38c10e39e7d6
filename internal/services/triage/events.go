// File: internal/services/triage/events.go
package triage

import (
	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/presenter"
)

type PivotKind string

const (
	PivotAssistant PivotKind = "assistant"
	PivotDoctors   PivotKind = "doctors"
)

// PivotEvent hands a result's context from the results panel to another panel.
type PivotEvent struct {
	Kind    PivotKind `json:"kind"`
	Context string    `json:"context"`
}

// EventFor derives the pivot event for a result.
func EventFor(kind PivotKind, r domain.PredictionResult) (PivotEvent, error) {
	switch kind {
	case PivotAssistant:
		return PivotEvent{Kind: kind, Context: presenter.AssistantSeed(r)}, nil
	case PivotDoctors:
		return PivotEvent{Kind: kind, Context: presenter.DoctorHint(r)}, nil
	default:
		return PivotEvent{}, domain.NewValidationError("pivot", "kind", "unknown pivot kind "+string(kind))
	}
}
