// File: internal/repository/ledger/interface.go
package ledger

import (
	"context"
	"errors"
)

// Names of the durable logs.
const (
	FeedbackLog = "feedback"
	BookingLog  = "doctor_bookings"
)

// ErrLogNotFound is returned by a Store when nothing was ever written under a name.
var ErrLogNotFound = errors.New("log not found")

// Store is the durable key-value substrate the ledgers are written to.
// A value is the full serialized log; there is no partial update.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
}

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
