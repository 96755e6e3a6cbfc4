package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/retailpos/backend/internal/domain/pos"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TerminalState is a single keyed JSON document of durable terminal
// state. The session registry snapshot lives here so the register
// resumes mid-customer after a restart.
type TerminalState struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     []byte    `gorm:"type:bytes;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TerminalState) TableName() string {
	return "terminal_state"
}

const sessionSnapshotKey = "session_registry"

// GormSessionStore implements pos.SessionStore on the terminal state table
type GormSessionStore struct {
	db *gorm.DB
}

// NewGormSessionStore creates a new GormSessionStore
func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

// Load returns the last saved registry snapshot, or an empty snapshot
// when nothing has been saved yet
func (s *GormSessionStore) Load(ctx context.Context) (*pos.RegistrySnapshot, error) {
	var state TerminalState
	err := s.db.WithContext(ctx).
		Where("key = ?", sessionSnapshotKey).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &pos.RegistrySnapshot{Sessions: []*pos.CustomerSession{}}, nil
		}
		return nil, err
	}

	var snapshot pos.RegistrySnapshot
	if err := json.Unmarshal(state.Value, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.Sessions == nil {
		snapshot.Sessions = []*pos.CustomerSession{}
	}
	return &snapshot, nil
}

// Save replaces the stored registry snapshot
func (s *GormSessionStore) Save(ctx context.Context, snapshot *pos.RegistrySnapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	state := TerminalState{
		Key:       sessionSnapshotKey,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&state).Error
}

// Ensure GormSessionStore implements SessionStore
var _ pos.SessionStore = (*GormSessionStore)(nil)
