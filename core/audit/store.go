package audit

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SyncRun is one execution of the sync pipeline.
type SyncRun struct {
	ID        string `gorm:"primaryKey;size:36"`
	MergePlan string `gorm:"size:8"`
	DryRun    bool
	Sources   int
	Domains   int
	StartedAt time.Time
}

// Operation is one write applied to a destination during a run.
type Operation struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	RunID       string `gorm:"size:36;index"`
	Destination string `gorm:"size:255"`
	Domain      string `gorm:"size:255"`
	Action      string `gorm:"size:16"`
	Severity    string `gorm:"size:16"`
	AppliedAt   time.Time
}

// Store persists audit records.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the audit tables if they do not exist.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&SyncRun{}, &Operation{}); err != nil {
		return fmt.Errorf("migrate audit schema: %w", err)
	}
	return nil
}

// RecordRun appends one sync-run record.
func (s *Store) RecordRun(ctx context.Context, run SyncRun) error {
	return s.db.WithContext(ctx).Create(&run).Error
}

// RecordOperation appends one applied-operation record.
func (s *Store) RecordOperation(ctx context.Context, op Operation) error {
	return s.db.WithContext(ctx).Create(&op).Error
}
