package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/printing"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

// Factory builds the temporary product cache and receipt stage from
// configuration. With Redis enabled it connects once and shares the client;
// otherwise, or when the connection fails and fallback is allowed, it
// returns the wired database-backed stores, or in-memory implementations
// as a last resort.
type Factory struct {
	redisConfig      config.RedisConfig
	logger           *zap.Logger
	allowFallback    bool
	client           *redis.Client
	durableTempCache pos.TemporaryProductCache
	durableStage     printing.Stage
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowFallback = allow
	}
}

// WithDurableStores sets database-backed implementations used when Redis
// is disabled or unreachable. Temporary products must outlive a restart,
// so production wiring always provides these; the in-memory stores remain
// only for tests.
func WithDurableStores(tempCache pos.TemporaryProductCache, stage printing.Stage) FactoryOption {
	return func(f *Factory) {
		f.durableTempCache = tempCache
		f.durableStage = stage
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:   cfg,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// TemporaryProductCache returns the configured temporary product cache
func (f *Factory) TemporaryProductCache() (pos.TemporaryProductCache, error) {
	if !f.redisConfig.Enabled {
		return f.fallbackTempCache(), nil
	}

	client, err := f.redisClient()
	if err != nil {
		if !f.allowFallback {
			return nil, err
		}
		f.logger.Warn("Redis unavailable, falling back for temporary product cache",
			zap.Error(err))
		return f.fallbackTempCache(), nil
	}
	return NewRedisTemporaryProductCache(client), nil
}

// ReceiptStage returns the configured receipt stage
func (f *Factory) ReceiptStage() (printing.Stage, error) {
	if !f.redisConfig.Enabled {
		return f.fallbackStage(), nil
	}

	client, err := f.redisClient()
	if err != nil {
		if !f.allowFallback {
			return nil, err
		}
		f.logger.Warn("Redis unavailable, falling back for receipt stage",
			zap.Error(err))
		return f.fallbackStage(), nil
	}
	return NewRedisReceiptStage(client), nil
}

func (f *Factory) fallbackTempCache() pos.TemporaryProductCache {
	if f.durableTempCache != nil {
		return f.durableTempCache
	}
	return NewInMemoryTemporaryProductCache()
}

func (f *Factory) fallbackStage() printing.Stage {
	if f.durableStage != nil {
		return f.durableStage
	}
	return NewInMemoryReceiptStage()
}

// Close closes the shared Redis client if one was opened
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}

func (f *Factory) redisClient() (*redis.Client, error) {
	if f.client != nil {
		return f.client, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", f.redisConfig.Host, f.redisConfig.Port),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	f.client = client
	return client, nil
}
