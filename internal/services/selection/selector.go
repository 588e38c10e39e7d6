// File: internal/services/selection/selector.go
package selection

import (
	"errors"
	"strings"
	"sync"

	"github.com/iyunix/go-medisen/internal/domain"
)

var ErrUnknownSymptom = errors.New("unknown symptom")

// Selector holds the user's current set of symptoms. Order follows insertion
// and is only used for display.
type Selector struct {
	mu     sync.Mutex
	vocab  *Vocabulary
	tokens []domain.SymptomToken
}

func NewSelector(vocab *Vocabulary) *Selector {
	return &Selector{vocab: vocab}
}

// Add inserts tok. It reports false when tok was already selected.
func (s *Selector) Add(tok domain.SymptomToken) (bool, error) {
	tok = domain.SymptomToken(strings.TrimSpace(string(tok)))
	if err := s.check(tok); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(tok) >= 0 {
		return false, nil
	}
	s.tokens = append(s.tokens, tok)
	return true, nil
}

// Remove drops tok if present.
func (s *Selector) Remove(tok domain.SymptomToken) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(tok)
	if i < 0 {
		return false
	}
	s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
	return true
}

// Replace swaps the whole selection. Duplicates collapse; any unknown token
// rejects the call and leaves the current selection alone.
func (s *Selector) Replace(tokens []domain.SymptomToken) error {
	next, err := s.normalize(tokens)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = next
	return nil
}

// Edit is a batch of selection changes applied in the order clear, replace,
// remove, add.
type Edit struct {
	Clear   bool
	Replace []domain.SymptomToken
	Remove  []domain.SymptomToken
	Add     []domain.SymptomToken
}

// Apply validates every replaced and added token before touching the
// selection, so a rejected edit changes nothing.
func (s *Selector) Apply(e Edit) error {
	replace, err := s.normalize(e.Replace)
	if err != nil {
		return err
	}
	add, err := s.normalize(e.Add)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Clear {
		s.tokens = nil
	}
	if e.Replace != nil {
		s.tokens = replace
	}
	for _, tok := range e.Remove {
		if i := s.indexOf(domain.SymptomToken(strings.TrimSpace(string(tok)))); i >= 0 {
			s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
		}
	}
	for _, tok := range add {
		if s.indexOf(tok) < 0 {
			s.tokens = append(s.tokens, tok)
		}
	}
	return nil
}

func (s *Selector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
}

// Tokens returns a copy of the selection.
func (s *Selector) Tokens() []domain.SymptomToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SymptomToken{}, s.tokens...)
}

func (s *Selector) Contains(tok domain.SymptomToken) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(tok) >= 0
}

func (s *Selector) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// normalize trims, checks and dedupes tokens without holding the lock.
func (s *Selector) normalize(tokens []domain.SymptomToken) ([]domain.SymptomToken, error) {
	next := make([]domain.SymptomToken, 0, len(tokens))
	seen := make(map[domain.SymptomToken]struct{}, len(tokens))
	for _, tok := range tokens {
		tok = domain.SymptomToken(strings.TrimSpace(string(tok)))
		if err := s.check(tok); err != nil {
			return nil, err
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		next = append(next, tok)
	}
	return next, nil
}

func (s *Selector) check(tok domain.SymptomToken) error {
	if tok == "" {
		return domain.NewValidationError("select_symptom", "symptom", "symptom is empty")
	}
	if s.vocab != nil && !s.vocab.Contains(tok) {
		return &domain.ValidationError{
			Operation: "select_symptom",
			Field:     "symptom",
			Message:   ErrUnknownSymptom.Error() + ": " + string(tok),
		}
	}
	return nil
}

func (s *Selector) indexOf(tok domain.SymptomToken) int {
	for i, t := range s.tokens {
		if t == tok {
			return i
		}
	}
	return -1
}
