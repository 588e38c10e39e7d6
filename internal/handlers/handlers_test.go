package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/ratelimit"
	"github.com/iyunix/go-medisen/internal/repository/ledger"
	"github.com/iyunix/go-medisen/internal/services"
	"github.com/iyunix/go-medisen/internal/services/ai"
	"github.com/iyunix/go-medisen/internal/services/assistant"
	"github.com/iyunix/go-medisen/internal/services/classifier"
	"github.com/iyunix/go-medisen/internal/services/doctor"
	"github.com/iyunix/go-medisen/internal/services/prediction"
	"github.com/iyunix/go-medisen/internal/services/selection"
	"github.com/iyunix/go-medisen/internal/services/triage"
)

type memStore struct {
	mu   sync.Mutex
	logs map[string][]byte
}

func (m *memStore) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.logs[name]
	if !ok {
		return nil, ledger.ErrLogNotFound
	}
	return b, nil
}

func (m *memStore) Save(_ context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[name] = payload
	return nil
}

type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, symptoms []domain.SymptomToken) ([]domain.PredictionResult, error) {
	return []domain.PredictionResult{{
		Disease:   "Fungal infection",
		Symptoms:  []string{"itching", "skin_rash", "nodal_skin_eruptions"},
		Specialty: "Dermatologist",
	}}, nil
}

type stubProvider struct{}

func (stubProvider) Complete(context.Context, ai.CompletionRequest) (string, error) {
	return "Keep the area **dry**.", nil
}

// gate holds a stubbed call until release is closed or its context ends.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) wait(ctx context.Context) error {
	select {
	case g.started <- struct{}{}:
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.release:
		return nil
	}
}

type gatedClassifier struct{ *gate }

func (c gatedClassifier) Classify(ctx context.Context, symptoms []domain.SymptomToken) ([]domain.PredictionResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return stubClassifier{}.Classify(ctx, symptoms)
}

type gatedProvider struct{ *gate }

func (p gatedProvider) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	return stubProvider{}.Complete(ctx, req)
}

type testAPI struct {
	t      *testing.T
	router http.Handler
}

func newTestAPI(t *testing.T, submitLimit int) *testAPI {
	t.Helper()
	return newTestAPIWith(t, submitLimit, stubClassifier{}, stubProvider{})
}

func newTestAPIWith(t *testing.T, submitLimit int, clf classifier.Classifier, provider ai.CompletionProvider) *testAPI {
	t.Helper()
	logger := &services.NoOpLogger{}
	store := &memStore{logs: map[string][]byte{}}
	deps := &triage.Dependencies{
		Vocabulary: selection.DefaultVocabulary(),
		Classifier: clf,
		Completion: provider,
		Registry: doctor.NewRegistry([]domain.Doctor{
			{Name: "Dr. Skin", Specialty: "Dermatologist", City: "Nagpur", Contact: "0712-1"},
			{Name: "Dr. Heart", Specialty: "Cardiologist", City: "Nagpur", Contact: "0712-2"},
		}),
		Matcher:     doctor.NewSeededMatcher(3),
		DefaultCity: "Nagpur",
		Logger:      logger,
	}
	svc, err := services.NewTriageService(deps,
		ledger.NewFeedbackLedger(store, logger),
		ledger.NewBookingLedger(store, logger),
		logger)
	require.NoError(t, err)

	limiter := ratelimit.NewMemoryRateLimiter(&ratelimit.Config{WindowSize: time.Minute, MaxRequests: submitLimit})
	t.Cleanup(limiter.Close)

	router := NewRouter(NewTriageHandler(svc, logger), NewLedgerHandler(svc, logger), NewLogHandler(logger), limiter, logger)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	rec := a.serve(httptest.NewRequest(method, path, &buf))
	if out != nil {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func (a *testAPI) serve(req *http.Request) *httptest.ResponseRecorder {
	req.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// serveCancelled sends the request with a context that is cancelled once
// the gated call has started, then lets the call finish.
func (a *testAPI) serveCancelled(g *gate, method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(method, path, &buf).WithContext(ctx)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- a.serve(req) }()

	select {
	case <-g.started:
	case <-time.After(2 * time.Second):
		a.t.Fatal("gated call never started")
	}
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(g.release)

	select {
	case rec := <-done:
		return rec
	case <-time.After(2 * time.Second):
		a.t.Fatal("request did not finish")
		return nil
	}
}

func (a *testAPI) newSession() string {
	var v triage.View
	rec := a.do("POST", "/api/sessions", nil, &v)
	require.Equal(a.t, http.StatusCreated, rec.Code)
	require.Equal(a.t, v.ID, rec.Header().Get(SessionHeader))
	return v.ID
}

func TestTriageFlow(t *testing.T) {
	api := newTestAPI(t, 5)
	id := api.newSession()
	base := "/api/sessions/" + id

	var sel struct {
		Selection []domain.SymptomToken `json:"selection"`
	}
	rec := api.do("PUT", base+"/symptoms", map[string]interface{}{"add": []string{"itching", "skin_rash"}}, &sel)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.SymptomToken{"itching", "skin_rash"}, sel.Selection)

	var view triage.View
	rec = api.do("POST", base+"/predict", nil, &view)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, view.Results.Cards, 1)
	assert.Equal(t, "Fungal infection", view.Results.Cards[0].Disease)
	assert.Equal(t, "Dermatologist", view.Results.Cards[0].Specialty)
	assert.Nil(t, view.Results.Cards[0].Confidence)

	var pivot struct {
		Event triage.PivotEvent `json:"event"`
	}
	rec = api.do("POST", base+"/pivot", map[string]interface{}{"kind": "assistant", "index": 0}, &pivot)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, pivot.Event.Context, "Fungal infection")

	var sent struct {
		Reply domain.ConversationTurn `json:"reply"`
	}
	rec = api.do("POST", base+"/assistant/messages", map[string]string{"message": "what should I do?"}, &sent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RoleAssistant, sent.Reply.Role)

	var rendered []struct {
		Role string `json:"role"`
		HTML string `json:"html"`
	}
	rec = api.do("GET", base+"/assistant/transcript?format=html", nil, &rendered)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rendered, 3)
	assert.Contains(t, rendered[2].HTML, "<strong>dry</strong>")

	rec = api.do("POST", base+"/pivot", map[string]interface{}{"kind": "doctors", "index": 0}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var finder doctor.FinderView
	rec = api.do("POST", base+"/doctors/search", nil, &finder)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, finder.Doctors, 1)
	assert.Equal(t, "Dr. Skin", finder.Doctors[0].Name)

	var booked domain.Booking
	rec = api.do("POST", "/api/bookings", map[string]interface{}{
		"doctor_ref":     "Dr. Skin",
		"requester_name": "Ravi",
		"contact":        "98230 00000",
		"preferred_at":   "2026-11-02T10:30:00Z",
	}, &booked)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, booked.ID)

	var bookings []domain.Booking
	api.do("GET", "/api/bookings", nil, &bookings)
	assert.Len(t, bookings, 1)
}

func TestErrors(t *testing.T) {
	api := newTestAPI(t, 5)
	id := api.newSession()
	base := "/api/sessions/" + id

	rec := api.do("GET", "/api/sessions/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do("POST", base+"/predict", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("PUT", base+"/symptoms", map[string]interface{}{"add": []string{"not_a_symptom"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", base+"/pivot", map[string]interface{}{"kind": "assistant", "index": 4}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", base+"/assistant/messages", map[string]string{"message": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", base+"/doctors/search", map[string]string{"city": "Atlantis"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", "/api/feedback", map[string]interface{}{"rating": 0, "comment": "hm"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedback_RateLimited(t *testing.T) {
	api := newTestAPI(t, 2)

	for i := 0; i < 2; i++ {
		rec := api.do("POST", "/api/feedback", map[string]interface{}{"rating": 5, "comment": "helpful"}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := api.do("POST", "/api/feedback", map[string]interface{}{"rating": 5, "comment": "again"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var list []domain.Feedback
	rec = api.do("GET", "/api/feedback", nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list, 2)
}

func TestSuggestSymptomsAndHealth(t *testing.T) {
	api := newTestAPI(t, 5)

	var out []map[string]string
	rec := api.do("GET", "/api/symptoms?q=skin&limit=3", nil, &out)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, out)
	assert.Equal(t, "skin_rash", out[0]["value"])
	assert.Equal(t, "skin rash", out[0]["label"])

	rec = api.do("GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do("POST", "/api/log", map[string]string{"level": "error", "message": "boom"}, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateSymptoms_RejectedEditChangesNothing(t *testing.T) {
	api := newTestAPI(t, 5)
	base := "/api/sessions/" + api.newSession()

	rec := api.do("PUT", base+"/symptoms", map[string]interface{}{"add": []string{"itching", "skin_rash"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do("PUT", base+"/symptoms", map[string]interface{}{
		"clear": true,
		"add":   []string{"cough", "not_a_symptom"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var view triage.View
	api.do("GET", base, nil, &view)
	assert.Equal(t, []domain.SymptomToken{"itching", "skin_rash"}, view.Selection)
}

func TestPredict_SurvivesClientDisconnect(t *testing.T) {
	g := newGate()
	api := newTestAPIWith(t, 5, gatedClassifier{g}, stubProvider{})
	base := "/api/sessions/" + api.newSession()

	rec := api.do("PUT", base+"/symptoms", map[string]interface{}{"add": []string{"itching"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.serveCancelled(g, "POST", base+"/predict", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view triage.View
	api.do("GET", base, nil, &view)
	assert.Equal(t, prediction.StateSuccess, view.Results.State)
	require.Len(t, view.Results.Cards, 1)
	assert.Equal(t, "Fungal infection", view.Results.Cards[0].Disease)
}

func TestAssistantSend_SurvivesClientDisconnect(t *testing.T) {
	g := newGate()
	api := newTestAPIWith(t, 5, stubClassifier{}, gatedProvider{g})
	base := "/api/sessions/" + api.newSession()

	rec := api.serveCancelled(g, "POST", base+"/assistant/messages", map[string]string{"message": "is it serious?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view triage.View
	api.do("GET", base, nil, &view)
	turns := view.Assistant.Transcript
	require.NotEmpty(t, turns)
	last := turns[len(turns)-1]
	assert.Equal(t, domain.RoleAssistant, last.Role)
	assert.Equal(t, "Keep the area **dry**.", last.Content)
	assert.NotEqual(t, assistant.ErrorReply, last.Content)
}
