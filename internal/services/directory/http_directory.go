// File: internal/services/directory/http_directory.go
package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iyunix/go-medisen/internal/domain"
)

const maxRegistryBytes = 1 << 20

// HTTPDirectory fetches the registry as a JSON array from a URL.
type HTTPDirectory struct {
	url    string
	client *http.Client
}

func NewHTTPDirectory(url string, timeout time.Duration) *HTTPDirectory {
	return &HTTPDirectory{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (d *HTTPDirectory) Fetch(ctx context.Context) ([]domain.Doctor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRegistryBytes))
	if err != nil {
		return nil, fmt.Errorf("read directory response: %w", err)
	}
	return decodeRegistry(raw)
}

// LoadRegistry fetches the registry once. Any failure yields an empty registry.
func LoadRegistry(ctx context.Context, dir Directory, logger Logger) []domain.Doctor {
	doctors, err := dir.Fetch(ctx)
	if err != nil {
		logger.Warn("doctor directory unavailable, continuing with empty registry", "error", err)
		return []domain.Doctor{}
	}
	logger.Info("doctor registry loaded", "doctors", len(doctors))
	return doctors
}

// LoadRegistryAsync runs LoadRegistry in the background and hands the result
// to store. The returned channel closes once store has been called.
func LoadRegistryAsync(ctx context.Context, dir Directory, logger Logger, store func([]domain.Doctor)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		store(LoadRegistry(ctx, dir, logger))
	}()
	return done
}
