// File: internal/repository/ledger/gorm_store.go
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DurableLog is one named log row. Payload holds the whole JSON array.
type DurableLog struct {
	Name      string `gorm:"primaryKey;size:64"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the durable_logs table.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Migrate creates the durable_logs table if needed.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&DurableLog{})
}

func (s *gormStore) Load(ctx context.Context, name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("invalid log name")
	}

	var row DurableLog
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error loading log %q: %w", name, err)
	}
	return []byte(row.Payload), nil
}

func (s *gormStore) Save(ctx context.Context, name string, payload []byte) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("invalid log name")
	}

	row := DurableLog{Name: name, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("database error saving log %q: %w", name, err)
	}
	return nil
}
