package doctor

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/directory"
)

func registry(t *testing.T) []domain.Doctor {
	t.Helper()
	doctors, err := directory.NewStaticDirectory().Fetch(context.Background())
	require.NoError(t, err)
	return doctors
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func assertNoDuplicates(t *testing.T, doctors []domain.Doctor) {
	t.Helper()
	seen := map[string]bool{}
	for _, d := range doctors {
		assert.False(t, seen[d.Name], "duplicate %s", d.Name)
		seen[d.Name] = true
	}
}

func TestMatch_EmptyHintSamplesFullRegistry(t *testing.T) {
	reg := registry(t)
	got := Match(reg, "", 6, seeded(1))
	assert.Len(t, got, 6)
	assertNoDuplicates(t, got)
	for _, d := range got {
		assert.Contains(t, reg, d)
	}
}

func TestMatch_HintFiltersCaseInsensitively(t *testing.T) {
	reg := registry(t)
	for seed := uint64(0); seed < 20; seed++ {
		got := Match(reg, "cardio", 6, seeded(seed))
		require.Len(t, got, 2)
		for _, d := range got {
			assert.Equal(t, "Cardiologist", d.Specialty)
		}
	}
}

func TestMatch_NeverPadsWithNonMatching(t *testing.T) {
	got := Match(registry(t), "Cardiologist", 6, seeded(42))
	names := []string{got[0].Name, got[1].Name}
	assert.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"Dr. Nitin Tiwari", "Dr. Sanjay Gidhwani"}, names)
}

func TestMatch_UnknownSpecialtyFallsBack(t *testing.T) {
	reg := registry(t)
	got := Match(reg, "no-such-specialty", 6, seeded(7))
	assert.Len(t, got, 6)
	assertNoDuplicates(t, got)
}

func TestMatch_SampleSizeBounds(t *testing.T) {
	reg := registry(t)
	assert.Len(t, Match(reg, "", 100, seeded(3)), len(reg))
	assert.Empty(t, Match(reg, "", 0, seeded(3)))
	assert.Empty(t, Match(reg, "", -2, seeded(3)))
	assert.Empty(t, Match(nil, "cardio", 6, seeded(3)))
}

func TestMatch_DeterministicWithSameSeed(t *testing.T) {
	reg := registry(t)
	assert.Equal(t, Match(reg, "physician", 6, seeded(9)), Match(reg, "physician", 6, seeded(9)))
}

func TestMatch_DoesNotReorderRegistry(t *testing.T) {
	reg := registry(t)
	before := append([]domain.Doctor(nil), reg...)
	_ = Match(reg, "", 6, seeded(5))
	assert.Equal(t, before, reg)
}

func TestMatch_RoughlyUniform(t *testing.T) {
	reg := registry(t)
	rng := seeded(11)
	counts := map[string]int{}
	const rounds = 3400
	for i := 0; i < rounds; i++ {
		for _, d := range Match(reg, "", 1, rng) {
			counts[d.Name]++
		}
	}
	// expected 200 per doctor
	for name, c := range counts {
		assert.InDelta(t, 200, c, 70, name)
	}
	assert.Len(t, counts, len(reg))
}

func TestFinder_SearchCloseLifecycle(t *testing.T) {
	f := NewFinder(NewRegistry(registry(t)), NewSeededMatcher(1), 0, "Nagpur")

	f.Open("Cardiologist")
	got := f.Search()
	assert.Len(t, got, 2)

	view := f.View()
	assert.True(t, view.Open)
	assert.True(t, view.Searched)
	assert.Equal(t, "Cardiologist", view.Hint)
	assert.Equal(t, []string{"Nagpur"}, view.Cities)

	f.Close()
	view = f.View()
	assert.False(t, view.Open)
	assert.False(t, view.Searched)
	assert.Empty(t, view.Doctors)
	assert.Equal(t, "Nagpur", view.City)
}

func TestFinder_SetCityRejectsUnknown(t *testing.T) {
	f := NewFinder(NewRegistry(registry(t)), NewSeededMatcher(1), 6, "Nagpur")
	assert.True(t, domain.IsValidationError(f.SetCity("Atlantis")))
	assert.NoError(t, f.SetCity("nagpur"))
	assert.Equal(t, "Nagpur", f.View().City)
}

func TestFinder_EmptyRegistry(t *testing.T) {
	f := NewFinder(nil, NewSeededMatcher(1), 6, "Nagpur")
	f.Open("")
	assert.Empty(t, f.Search())
	assert.True(t, f.View().Searched)
}

func TestFinder_SeesRegistryLoadedLater(t *testing.T) {
	reg := NewRegistry(nil)
	f := NewFinder(reg, NewSeededMatcher(1), 6, "Nagpur")
	f.Open("Cardiologist")
	assert.Empty(t, f.Search())

	reg.Set(registry(t))
	assert.Len(t, f.Search(), 2)
	assert.Equal(t, []string{"Nagpur"}, f.View().Cities)
	_, ok := f.Lookup(f.View().Doctors[0].Name)
	assert.True(t, ok)
}

func TestRegistry_SetCopies(t *testing.T) {
	doctors := []domain.Doctor{{Name: "Dr. A", Specialty: "Dermatologist", City: "Nagpur"}}
	reg := NewRegistry(doctors)
	doctors[0].Name = "changed"

	assert.Equal(t, "Dr. A", reg.Doctors()[0].Name)
	_, ok := reg.Lookup("changed")
	assert.False(t, ok)
}
