// File: internal/services/presenter/presenter.go
package presenter

import (
	"fmt"
	"strings"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/prediction"
)

const (
	ResultsHeading = "Prediction Results"
	LoadingText    = "Predicting diseases..."
)

// Card is one rendered prediction result.
type Card struct {
	Index           int      `json:"index"`
	Disease         string   `json:"disease"`
	Specialty       string   `json:"specialty,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	Symptoms        []string `json:"symptoms"`
	MatchedSymptoms []string `json:"matched_symptoms,omitempty"`
	AssistantSeed   string   `json:"assistant_seed"`
	DoctorHint      string   `json:"doctor_hint"`
}

// ResultsPanel is the results area: a loading line, an error line, or the cards.
type ResultsPanel struct {
	State   prediction.State `json:"state"`
	Status  string           `json:"status,omitempty"`
	Error   string           `json:"error,omitempty"`
	Heading string           `json:"heading,omitempty"`
	Cards   []Card           `json:"cards"`
}

// Present derives the results panel from a coordinator snapshot. Cards are
// only shown for a successful, non-empty result list.
func Present(snap prediction.Snapshot) ResultsPanel {
	panel := ResultsPanel{State: snap.State, Cards: []Card{}}
	switch snap.State {
	case prediction.StateLoading:
		panel.Status = LoadingText
	case prediction.StateError:
		panel.Error = snap.Message
	case prediction.StateSuccess:
		if len(snap.Results) == 0 {
			return panel
		}
		panel.Heading = ResultsHeading
		for i, r := range snap.Results {
			panel.Cards = append(panel.Cards, cardFor(i, r))
		}
	}
	return panel
}

func cardFor(i int, r domain.PredictionResult) Card {
	return Card{
		Index:           i,
		Disease:         r.Disease,
		Specialty:       r.Specialty,
		Confidence:      r.Confidence,
		Symptoms:        labels(r.Symptoms),
		MatchedSymptoms: labels(r.MatchedSymptoms),
		AssistantSeed:   AssistantSeed(r),
		DoctorHint:      DoctorHint(r),
	}
}

// AssistantSeed is the opening assistant turn when the user asks about a result.
func AssistantSeed(r domain.PredictionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your symptoms may point to %s.", r.Disease)
	if len(r.Symptoms) > 0 {
		fmt.Fprintf(&b, " It is commonly associated with %s.", strings.Join(labels(r.Symptoms), ", "))
	}
	if r.HasSpecialty() {
		fmt.Fprintf(&b, " A %s usually treats it.", r.Specialty)
	}
	b.WriteString(" Ask me anything about its symptoms, causes, or cures.")
	return b.String()
}

// DoctorHint is the specialty filter for the doctor finder. Without a
// specialty the disease name is used, which usually falls back to everyone.
func DoctorHint(r domain.PredictionResult) string {
	if r.HasSpecialty() {
		return r.Specialty
	}
	return r.Disease
}

func labels(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ReplaceAll(t, "_", " ")
	}
	return out
}
