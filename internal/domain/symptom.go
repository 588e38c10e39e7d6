// File: internal/domain/symptom.go
package domain

// SymptomToken is one entry of the classifier's symptom vocabulary, e.g. "skin_rash".
type SymptomToken string

// Strings converts a selection to the plain strings sent over the wire.
func Strings(tokens []SymptomToken) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}
