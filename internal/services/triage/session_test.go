package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/ai"
	"github.com/iyunix/go-medisen/internal/services/assistant"
	"github.com/iyunix/go-medisen/internal/services/doctor"
	"github.com/iyunix/go-medisen/internal/services/prediction"
	"github.com/iyunix/go-medisen/internal/services/selection"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fixedClassifier struct {
	results []domain.PredictionResult
	seen    [][]domain.SymptomToken
}

func (c *fixedClassifier) Classify(_ context.Context, symptoms []domain.SymptomToken) ([]domain.PredictionResult, error) {
	c.seen = append(c.seen, symptoms)
	return c.results, nil
}

type echoProvider struct{}

func (echoProvider) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	return "you said: " + req.Transcript[len(req.Transcript)-1].Content, nil
}

var registry = []domain.Doctor{
	{Name: "Dr. A", Specialty: "Dermatologist", City: "Nagpur", Contact: "1"},
	{Name: "Dr. B", Specialty: "Cardiologist", City: "Nagpur", Contact: "2"},
	{Name: "Dr. C", Specialty: "Dermatologist", City: "Pune", Contact: "3"},
}

func newTestSession(t *testing.T) (*Session, *fixedClassifier) {
	t.Helper()
	clf := &fixedClassifier{results: []domain.PredictionResult{
		{Disease: "Fungal infection", Symptoms: []string{"itching", "skin_rash"}, Specialty: "Dermatologist"},
		{Disease: "Allergy", Symptoms: []string{"continuous_sneezing"}},
	}}
	deps := &Dependencies{
		Vocabulary:  selection.DefaultVocabulary(),
		Classifier:  clf,
		Completion:  echoProvider{},
		Registry:    doctor.NewRegistry(registry),
		Matcher:     doctor.NewSeededMatcher(7),
		SampleSize:  6,
		DefaultCity: "Nagpur",
		Logger:      nopLogger{},
	}
	require.NoError(t, deps.Validate())
	return NewSession("s-1", deps), clf
}

func TestSession_PredictSubmitsSelectionAndKeepsIt(t *testing.T) {
	s, clf := newTestSession(t)
	require.NoError(t, s.Selector.Replace([]domain.SymptomToken{"itching", "skin_rash"}))

	snap, err := s.Predict(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prediction.StateSuccess, snap.State)
	assert.Equal(t, [][]domain.SymptomToken{{"itching", "skin_rash"}}, clf.seen)

	v := s.View()
	assert.Equal(t, []domain.SymptomToken{"itching", "skin_rash"}, v.Selection)
	require.Len(t, v.Results.Cards, 2)
	assert.Equal(t, "Fungal infection", v.Results.Cards[0].Disease)
}

func TestSession_PredictRejectsEmptySelection(t *testing.T) {
	s, clf := newTestSession(t)
	_, err := s.Predict(context.Background())
	assert.True(t, domain.IsValidationError(err))
	assert.Empty(t, clf.seen)
}

func TestSession_PivotToAssistantSeedsFreshSession(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Selector.Replace([]domain.SymptomToken{"itching"}))
	_, err := s.Predict(context.Background())
	require.NoError(t, err)

	ev, err := s.Pivot(PivotAssistant, 0)
	require.NoError(t, err)
	assert.Equal(t, PivotAssistant, ev.Kind)
	assert.Contains(t, ev.Context, "Fungal infection")

	v := s.View().Assistant
	assert.True(t, v.Open)
	assert.Equal(t, assistant.StateFresh, v.State)
	require.Len(t, v.Transcript, 1)
	assert.Equal(t, ev.Context, v.Transcript[0].Content)

	// an active conversation is left alone by a later pivot
	_, err = s.Assistant.Send(context.Background(), "is it contagious?")
	require.NoError(t, err)
	_, err = s.Pivot(PivotAssistant, 1)
	require.NoError(t, err)
	assert.Len(t, s.Assistant.Transcript(), 3)
}

func TestSession_PivotToDoctorsUsesSpecialtyOrDisease(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Selector.Replace([]domain.SymptomToken{"itching"}))
	_, err := s.Predict(context.Background())
	require.NoError(t, err)

	ev, err := s.Pivot(PivotDoctors, 0)
	require.NoError(t, err)
	assert.Equal(t, "Dermatologist", ev.Context)

	found := s.Finder.Search()
	require.Len(t, found, 1)
	assert.Equal(t, "Dr. A", found[0].Name)

	s.Finder.Close()
	ev, err = s.Pivot(PivotDoctors, 1)
	require.NoError(t, err)
	assert.Equal(t, "Allergy", ev.Context)
	// no allergy specialists: every Nagpur doctor is a candidate
	assert.Len(t, s.Finder.Search(), 2)
}

func TestSession_PivotRejectsBadInput(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Pivot(PivotAssistant, 0)
	assert.True(t, domain.IsValidationError(err))

	require.NoError(t, s.Selector.Replace([]domain.SymptomToken{"itching"}))
	_, err = s.Predict(context.Background())
	require.NoError(t, err)

	_, err = s.Pivot("weather", 0)
	assert.True(t, domain.IsValidationError(err))
	assert.False(t, s.View().Assistant.Open)
	assert.False(t, s.View().Doctors.Open)
}

func TestDependencies_Validate(t *testing.T) {
	deps := &Dependencies{}
	assert.Error(t, deps.Validate())

	deps = &Dependencies{
		Vocabulary: selection.DefaultVocabulary(),
		Classifier: &fixedClassifier{},
		Completion: echoProvider{},
		Matcher:    doctor.NewSeededMatcher(1),
		Logger:     nopLogger{},
	}
	require.NoError(t, deps.Validate())
	assert.Equal(t, assistant.DefaultConfig().Model, deps.AssistantConfig.Model)
}
