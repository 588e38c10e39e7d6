// File: internal/services/directory/interface.go
package directory

import (
	"context"

	"github.com/iyunix/go-medisen/internal/domain"
)

// Directory supplies the doctor registry.
type Directory interface {
	Fetch(ctx context.Context) ([]domain.Doctor, error)
}

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
