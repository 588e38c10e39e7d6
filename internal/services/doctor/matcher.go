// File: internal/services/doctor/matcher.go
package doctor

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/iyunix/go-medisen/internal/domain"
)

// DefaultSampleSize is how many doctors a search shows.
const DefaultSampleSize = 6

// Match filters registry by a case-insensitive specialty substring and
// returns a uniform sample without replacement of min(n, candidates).
// An empty hint, or a hint nothing matches, samples the full registry.
func Match(registry []domain.Doctor, hint string, n int, rng *rand.Rand) []domain.Doctor {
	candidates := filterBySpecialty(registry, hint)
	if len(candidates) == 0 {
		candidates = registry
	}

	k := min(max(n, 0), len(candidates))
	pool := append([]domain.Doctor(nil), candidates...)
	// partial Fisher-Yates: the first k slots end up a uniform sample
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

func filterBySpecialty(registry []domain.Doctor, hint string) []domain.Doctor {
	needle := strings.ToLower(strings.TrimSpace(hint))
	if needle == "" {
		return nil
	}
	var out []domain.Doctor
	for _, d := range registry {
		if strings.Contains(strings.ToLower(d.Specialty), needle) {
			out = append(out, d)
		}
	}
	return out
}

// Matcher owns the random source used for sampling. *rand.Rand is not safe
// for concurrent use, so draws are serialized.
type Matcher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMatcher uses rng when given; nil seeds a fresh source from the runtime.
func NewMatcher(rng *rand.Rand) *Matcher {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Matcher{rng: rng}
}

// NewSeededMatcher gives reproducible samples.
func NewSeededMatcher(seed uint64) *Matcher {
	return NewMatcher(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (m *Matcher) Match(registry []domain.Doctor, hint string, n int) []domain.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Match(registry, hint, n, m.rng)
}
