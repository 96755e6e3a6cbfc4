package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retailpos/backend/internal/domain/printing"
)

const (
	receiptKeyPrefix = "pos:receipt:"
	receiptLatestKey = "pos:receipt:latest"
)

// receiptTTL bounds how long a staged receipt can be reprinted
const receiptTTL = 24 * time.Hour

// RedisReceiptStage stores staged receipts in Redis so reprints work
// after a terminal restart.
type RedisReceiptStage struct {
	client *redis.Client
}

// NewRedisReceiptStage creates a stage backed by an existing client
func NewRedisReceiptStage(client *redis.Client) *RedisReceiptStage {
	return &RedisReceiptStage{client: client}
}

// Put stages a receipt, replacing any earlier one for the same order
func (s *RedisReceiptStage) Put(ctx context.Context, payload *printing.ReceiptPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, receiptKeyPrefix+payload.OrderNumber, data, receiptTTL)
	pipe.Set(ctx, receiptLatestKey, payload.OrderNumber, receiptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to stage receipt: %w", err)
	}
	return nil
}

// Get returns the staged receipt for an order number, or nil when absent
func (s *RedisReceiptStage) Get(ctx context.Context, orderNumber string) (*printing.ReceiptPayload, error) {
	data, err := s.client.Get(ctx, receiptKeyPrefix+orderNumber).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt: %w", err)
	}

	var payload printing.ReceiptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}
	return &payload, nil
}

// Latest returns the most recently staged receipt, or nil when none exists
func (s *RedisReceiptStage) Latest(ctx context.Context) (*printing.ReceiptPayload, error) {
	orderNumber, err := s.client.Get(ctx, receiptLatestKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest receipt marker: %w", err)
	}
	return s.Get(ctx, orderNumber)
}

// Ensure RedisReceiptStage implements Stage
var _ printing.Stage = (*RedisReceiptStage)(nil)
