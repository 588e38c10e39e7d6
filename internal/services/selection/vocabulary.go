// File: internal/services/selection/vocabulary.go
package selection

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/iyunix/go-medisen/internal/domain"
)

//go:embed vocabulary.txt
var defaultVocabulary string

// maxTypoDistance bounds fuzzy suggestions; larger values drown the list in noise.
const maxTypoDistance = 2

// Vocabulary is the fixed set of symptom tokens the classifier understands.
type Vocabulary struct {
	tokens []domain.SymptomToken
	index  map[domain.SymptomToken]struct{}
}

// DefaultVocabulary returns the classifier's bundled symptom columns.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(strings.Split(defaultVocabulary, "\n"))
}

func NewVocabulary(entries []string) *Vocabulary {
	v := &Vocabulary{index: make(map[domain.SymptomToken]struct{}, len(entries))}
	for _, e := range entries {
		tok := domain.SymptomToken(strings.TrimSpace(e))
		if tok == "" {
			continue
		}
		if _, dup := v.index[tok]; dup {
			continue
		}
		v.index[tok] = struct{}{}
		v.tokens = append(v.tokens, tok)
	}
	return v
}

func (v *Vocabulary) Contains(tok domain.SymptomToken) bool {
	_, ok := v.index[tok]
	return ok
}

func (v *Vocabulary) All() []domain.SymptomToken {
	return append([]domain.SymptomToken(nil), v.tokens...)
}

func (v *Vocabulary) Len() int { return len(v.tokens) }

// Label renders a token for display: "skin_rash" -> "skin rash".
func Label(tok domain.SymptomToken) string {
	return strings.ReplaceAll(string(tok), "_", " ")
}

// Suggest ranks tokens for what the user typed: prefix matches first, then
// substring matches, then near-misses by edit distance.
func (v *Vocabulary) Suggest(query string, limit int) []domain.SymptomToken {
	q := normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		tok  domain.SymptomToken
		rank int
		dist int
	}
	var hits []scored
	for i, tok := range v.tokens {
		key := normalize(string(tok))
		switch {
		case strings.HasPrefix(key, q):
			hits = append(hits, scored{tok, 0, i})
		case strings.Contains(key, q):
			hits = append(hits, scored{tok, 1, i})
		default:
			if d := closestWordDistance(key, q); d <= maxTypoDistance {
				hits = append(hits, scored{tok, 2, d})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].dist < hits[j].dist
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]domain.SymptomToken, len(hits))
	for i, h := range hits {
		out[i] = h.tok
	}
	return out
}

// closestWordDistance compares the query with the whole key and with each word of it.
func closestWordDistance(key, q string) int {
	best := levenshtein.ComputeDistance(key, q)
	for _, w := range strings.Fields(key) {
		if d := levenshtein.ComputeDistance(w, q); d < best {
			best = d
		}
	}
	return best
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
}
