package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/retailpos/backend/internal/domain/printing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	receiptStageKeyPrefix = "receipt:"
	receiptStageLatestKey = "receipt:latest"
)

// GormReceiptStage keeps staged receipts in the terminal state table so
// reprints survive a terminal restart.
type GormReceiptStage struct {
	db *gorm.DB
}

// NewGormReceiptStage creates a stage on the given database
func NewGormReceiptStage(db *gorm.DB) *GormReceiptStage {
	return &GormReceiptStage{db: db}
}

// Put stages a receipt, replacing any earlier one for the same order
func (s *GormReceiptStage) Put(ctx context.Context, payload *printing.ReceiptPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}
		receipt := TerminalState{
			Key:       receiptStageKeyPrefix + payload.OrderNumber,
			Value:     value,
			UpdatedAt: now,
		}
		if err := tx.Clauses(upsert).Create(&receipt).Error; err != nil {
			return err
		}
		marker := TerminalState{
			Key:       receiptStageLatestKey,
			Value:     []byte(payload.OrderNumber),
			UpdatedAt: now,
		}
		return tx.Clauses(upsert).Create(&marker).Error
	})
}

// Get returns the staged receipt for an order number, or nil when absent
func (s *GormReceiptStage) Get(ctx context.Context, orderNumber string) (*printing.ReceiptPayload, error) {
	var state TerminalState
	err := s.db.WithContext(ctx).
		Where("key = ?", receiptStageKeyPrefix+orderNumber).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var payload printing.ReceiptPayload
	if err := json.Unmarshal(state.Value, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Latest returns the most recently staged receipt, or nil when none exists
func (s *GormReceiptStage) Latest(ctx context.Context) (*printing.ReceiptPayload, error) {
	var state TerminalState
	err := s.db.WithContext(ctx).
		Where("key = ?", receiptStageLatestKey).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.Get(ctx, string(state.Value))
}

// Ensure GormReceiptStage implements Stage
var _ printing.Stage = (*GormReceiptStage)(nil)
