// File: internal/services/prediction/coordinator.go
package prediction

import (
	"context"
	"errors"
	"sync"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/classifier"
)

// GenericFailureMessage is shown when the classifier gives no reason of its own.
const GenericFailureMessage = "Failed to get prediction. Please try again."

// ErrStale is returned to the caller of a submission that was overtaken by a newer one.
// Its outcome was discarded.
var ErrStale = errors.New("prediction superseded by a newer submission")

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Snapshot is a copy of the coordinator's visible state.
type Snapshot struct {
	State      State                     `json:"state"`
	Generation uint64                    `json:"generation"`
	Selection  []domain.SymptomToken     `json:"selection"`
	Results    []domain.PredictionResult `json:"results"`
	Message    string                    `json:"message,omitempty"`
}

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Coordinator owns the classify request lifecycle. Every submission stamps a
// generation; a completion is applied only while its generation is the latest,
// so the last issued submission wins whatever order the responses arrive in.
type Coordinator struct {
	classifier classifier.Classifier
	logger     Logger

	mu         sync.Mutex
	generation uint64
	state      State
	selection  []domain.SymptomToken
	results    []domain.PredictionResult
	message    string
	observers  []func(Snapshot)
}

func NewCoordinator(c classifier.Classifier, logger Logger) *Coordinator {
	return &Coordinator{
		classifier: c,
		logger:     logger,
		state:      StateIdle,
	}
}

// Observe registers fn to be called on every applied transition. fn runs with
// the coordinator locked and must not call back into it.
func (c *Coordinator) Observe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Submit classifies selection. It blocks until the classifier answers and
// returns the state it applied, or ErrStale if a newer submission was issued
// meanwhile. An empty selection is rejected without any request.
func (c *Coordinator) Submit(ctx context.Context, selection []domain.SymptomToken) (Snapshot, error) {
	if len(selection) == 0 {
		return Snapshot{}, domain.NewValidationError("predict", "symptoms", "select at least one symptom")
	}
	selection = append([]domain.SymptomToken(nil), selection...)

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.selection = selection
	c.results = nil
	c.message = ""
	c.notifyLocked()
	c.mu.Unlock()

	c.logger.Debug("prediction submitted", "generation", gen, "symptoms", len(selection))
	results, err := c.classifier.Classify(ctx, selection)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale prediction", "generation", gen, "current", c.generation)
		return Snapshot{}, ErrStale
	}

	if err != nil {
		c.state = StateError
		c.message = failureMessage(err)
		c.logger.Warn("prediction failed", "generation", gen, "error", err)
	} else {
		c.state = StateSuccess
		c.results = results
		c.logger.Info("prediction applied", "generation", gen, "results", len(results))
	}
	c.notifyLocked()
	return c.snapshotLocked(), nil
}

// Snapshot returns the current visible state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Result returns the i-th result of the current list.
func (c *Coordinator) Result(i int) (domain.PredictionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.results) {
		return domain.PredictionResult{}, false
	}
	return domain.CloneResults(c.results[i : i+1])[0], true
}

func (c *Coordinator) snapshotLocked() Snapshot {
	results := domain.CloneResults(c.results)
	if results == nil {
		results = []domain.PredictionResult{}
	}
	return Snapshot{
		State:      c.state,
		Generation: c.generation,
		Selection:  append([]domain.SymptomToken{}, c.selection...),
		Results:    results,
		Message:    c.message,
	}
}

func (c *Coordinator) notifyLocked() {
	if len(c.observers) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, fn := range c.observers {
		fn(snap)
	}
}

func failureMessage(err error) string {
	if msg, ok := classifier.UpstreamMessage(err); ok {
		return msg
	}
	return GenericFailureMessage
}
