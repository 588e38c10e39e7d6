// File: internal/domain/prediction.go
package domain

// PredictionResult is one ranked disease candidate returned for a submission.
type PredictionResult struct {
	Disease         string   `json:"disease"`
	Symptoms        []string `json:"symptoms"`
	Specialty       string   `json:"specialty,omitempty"`  // empty when the classifier has none
	Confidence      *float64 `json:"confidence,omitempty"` // the classifier never supplies it
	MatchedSymptoms []string `json:"matched_symptoms,omitempty"`
}

// HasSpecialty reports whether the classifier attached a specialty label.
func (p PredictionResult) HasSpecialty() bool {
	return p.Specialty != ""
}

// CloneResults returns a deep copy so callers can't mutate coordinator state.
func CloneResults(in []PredictionResult) []PredictionResult {
	if in == nil {
		return nil
	}
	out := make([]PredictionResult, len(in))
	for i, r := range in {
		out[i] = r
		out[i].Symptoms = append([]string(nil), r.Symptoms...)
		out[i].MatchedSymptoms = append([]string(nil), r.MatchedSymptoms...)
		if r.Confidence != nil {
			c := *r.Confidence
			out[i].Confidence = &c
		}
	}
	return out
}
