// File: internal/services/classifier/http_client.go
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/iyunix/go-medisen/internal/domain"
)

// classifyRequest is the body the classifier server reads; it expects the key "list".
type classifyRequest struct {
	List []string `json:"list"`
}

type classifyResult struct {
	Disease         string   `json:"disease"`
	AllSymptoms     []string `json:"all_symptoms"`
	Specialty       string   `json:"specialty"`
	MatchedSymptoms []string `json:"matched_symptoms"`
}

type errorPayload struct {
	Error *string `json:"error"`
}

const maxResponseBytes = 1 << 20

type HTTPClient struct {
	config *Config
	client *http.Client
}

func NewHTTPClient(config *Config) *HTTPClient {
	return &HTTPClient{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func (c *HTTPClient) Classify(ctx context.Context, symptoms []domain.SymptomToken) ([]domain.PredictionResult, error) {
	body, err := json.Marshal(classifyRequest{List: domain.Strings(symptoms)})
	if err != nil {
		return nil, &Error{Type: ErrTypeTransport, Message: "invalid payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Type: ErrTypeTransport, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *HTTPClient) handleResponse(resp *http.Response) ([]domain.PredictionResult, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Type: ErrTypeTransport, Code: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg, ok := decodeErrorPayload(raw); ok {
			return nil, &Error{Type: ErrTypeUpstream, Code: resp.StatusCode, Message: msg}
		}
		return nil, &Error{Type: ErrTypeTransport, Code: resp.StatusCode, Message: "unexpected status " + resp.Status}
	}

	results, err := decodeResults(raw)
	if err != nil {
		if msg, ok := decodeErrorPayload(raw); ok {
			return nil, &Error{Type: ErrTypeUpstream, Code: resp.StatusCode, Message: msg}
		}
		return nil, &Error{Type: ErrTypeTransport, Code: resp.StatusCode, Message: "malformed classifier response", Cause: err}
	}
	return results, nil
}

// decodeResults maps the wire array 1:1 and in order. Every entry must name a
// disease and carry an all_symptoms array; anything else rejects the whole response.
func decodeResults(raw []byte) ([]domain.PredictionResult, error) {
	var wire []*classifyResult
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, errMissingArray
	}

	results := make([]domain.PredictionResult, 0, len(wire))
	for i, w := range wire {
		if w == nil || w.Disease == "" {
			return nil, &shapeError{index: i, field: "disease"}
		}
		if w.AllSymptoms == nil {
			return nil, &shapeError{index: i, field: "all_symptoms"}
		}
		results = append(results, domain.PredictionResult{
			Disease:         w.Disease,
			Symptoms:        w.AllSymptoms,
			Specialty:       w.Specialty,
			MatchedSymptoms: w.MatchedSymptoms,
		})
	}
	return results, nil
}

func decodeErrorPayload(raw []byte) (string, bool) {
	var p errorPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.Error == nil || *p.Error == "" {
		return "", false
	}
	return *p.Error, true
}
