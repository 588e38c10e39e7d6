// File: internal/repository/ledger/ledger.go
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Log is an append-only list of records stored under one name.
// Each Append is a read-existing → append → write-full cycle. The mutex
// serializes cycles inside this process only; two processes sharing the
// same store can still lose an append.
type Log[T any] struct {
	store Store
	name  string
	mu    sync.Mutex
}

func NewLog[T any](store Store, name string) *Log[T] {
	return &Log[T]{store: store, name: name}
}

func (l *Log[T]) Name() string { return l.name }

// Append writes rec at the end of the log and returns once the store has it.
func (l *Log[T]) Append(ctx context.Context, rec T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.read(ctx)
	if err != nil {
		return err
	}
	records = append(records, rec)

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s log: %w", l.name, err)
	}
	if err := l.store.Save(ctx, l.name, payload); err != nil {
		return fmt.Errorf("write %s log: %w", l.name, err)
	}
	return nil
}

// List returns every record in append order.
func (l *Log[T]) List(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

func (l *Log[T]) read(ctx context.Context) ([]T, error) {
	payload, err := l.store.Load(ctx, l.name)
	if errors.Is(err, ErrLogNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s log: %w", l.name, err)
	}
	if len(payload) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode %s log: %w", l.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
