// File: internal/services/directory/static.go
package directory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/iyunix/go-medisen/internal/domain"
)

//go:embed registry.json
var staticRegistry []byte

// StaticDirectory serves the bundled reference list of doctors.
type StaticDirectory struct{}

func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{}
}

func (StaticDirectory) Fetch(ctx context.Context) ([]domain.Doctor, error) {
	return decodeRegistry(staticRegistry)
}

func decodeRegistry(raw []byte) ([]domain.Doctor, error) {
	var doctors []domain.Doctor
	if err := json.Unmarshal(raw, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctor registry: %w", err)
	}
	if doctors == nil {
		return nil, fmt.Errorf("decode doctor registry: not an array")
	}
	for i, d := range doctors {
		if d.Name == "" || d.Specialty == "" {
			return nil, fmt.Errorf("decode doctor registry: record %d is missing name or specialty", i)
		}
	}
	return doctors, nil
}
