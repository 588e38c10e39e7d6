// File: internal/services/doctor/finder.go
package doctor

import (
	"sort"
	"strings"
	"sync"

	"github.com/iyunix/go-medisen/internal/domain"
)

// FinderView is what the doctor finder dialog renders.
type FinderView struct {
	Open     bool            `json:"open"`
	Hint     string          `json:"hint,omitempty"`
	City     string          `json:"city"`
	Cities   []string        `json:"cities"`
	Searched bool            `json:"searched"`
	Doctors  []domain.Doctor `json:"doctors"`
}

// Finder holds the state of one doctor finder dialog over the shared registry.
type Finder struct {
	mu          sync.Mutex
	matcher     *Matcher
	registry    *Registry
	sampleSize  int
	defaultCity string

	open     bool
	hint     string
	city     string
	searched bool
	results  []domain.Doctor
}

func NewFinder(registry *Registry, matcher *Matcher, sampleSize int, defaultCity string) *Finder {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Finder{
		matcher:     matcher,
		registry:    registry,
		sampleSize:  sampleSize,
		defaultCity: defaultCity,
		city:        defaultCity,
	}
}

// Open shows the dialog searching for hint (may be empty).
func (f *Finder) Open(hint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.hint = strings.TrimSpace(hint)
}

// SetCity selects one of the cities present in the registry.
func (f *Finder) SetCity(city string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range citiesOf(f.registry.Doctors()) {
		if strings.EqualFold(c, strings.TrimSpace(city)) {
			f.city = c
			return nil
		}
	}
	return domain.NewValidationError("doctor_search", "city", "no doctors listed for "+city)
}

// Search samples doctors in the selected city for the current hint.
func (f *Finder) Search() []domain.Doctor {
	f.mu.Lock()
	defer f.mu.Unlock()

	doctors := f.registry.Doctors()
	inCity := make([]domain.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if f.city == "" || strings.EqualFold(d.City, f.city) {
			inCity = append(inCity, d)
		}
	}
	f.results = f.matcher.Match(inCity, f.hint, f.sampleSize)
	f.searched = true
	return append([]domain.Doctor(nil), f.results...)
}

// Close hides the dialog and clears hint, city and results.
func (f *Finder) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.hint = ""
	f.city = f.defaultCity
	f.searched = false
	f.results = nil
}

// Lookup finds a registry doctor by exact name.
func (f *Finder) Lookup(name string) (domain.Doctor, bool) {
	return f.registry.Lookup(name)
}

func (f *Finder) View() FinderView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FinderView{
		Open:     f.open,
		Hint:     f.hint,
		City:     f.city,
		Cities:   citiesOf(f.registry.Doctors()),
		Searched: f.searched,
		Doctors:  append([]domain.Doctor{}, f.results...),
	}
}

func citiesOf(registry []domain.Doctor) []string {
	seen := map[string]bool{}
	var cities []string
	for _, d := range registry {
		if d.City != "" && !seen[d.City] {
			seen[d.City] = true
			cities = append(cities, d.City)
		}
	}
	sort.Strings(cities)
	return cities
}
