package scanner

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FrameSource delivers camera frames. NextFrame blocks until a frame is
// available, the source is exhausted (io.EOF), or the context is done.
type FrameSource interface {
	NextFrame(ctx context.Context) ([]byte, error)
	Close() error
}

// Decoder extracts a barcode from a camera frame. ok is false when the
// frame contains no readable code.
type Decoder interface {
	Decode(frame []byte) (barcode string, ok bool)
}

// CameraConfig tunes the camera subscription
type CameraConfig struct {
	// DebounceInterval suppresses re-emits of the same code while it
	// stays in front of the camera.
	DebounceInterval time.Duration
}

// DefaultCameraConfig returns the default camera settings
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{DebounceInterval: 2 * time.Second}
}

// Camera runs a cancellable decode loop over a frame source. Start
// launches the loop; Stop cancels it and waits for it to exit. A code
// seen on consecutive frames is emitted once per debounce interval.
type Camera struct {
	mu      sync.Mutex
	cfg     CameraConfig
	source  FrameSource
	decoder Decoder
	emit    func(barcode string)
	logger  *zap.Logger

	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	lastCode string
	lastSeen time.Time
	lastErr  error
}

// NewCamera creates a camera that delivers decoded barcodes to emit
func NewCamera(cfg CameraConfig, source FrameSource, decoder Decoder, emit func(barcode string), logger *zap.Logger) *Camera {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultCameraConfig().DebounceInterval
	}
	return &Camera{
		cfg:     cfg,
		source:  source,
		decoder: decoder,
		emit:    emit,
		logger:  logger,
	}
}

// Start launches the decode loop. Starting a running camera is an error.
// The loop is detached from the caller's context: the subscription
// outlives the request that opened it, and only Stop or a source EOF
// ends it.
func (c *Camera) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return errors.New("camera already running")
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true
	c.lastCode = ""
	c.lastErr = nil

	go c.loop(loopCtx)
	return nil
}

// Stop cancels the decode loop and waits for it to exit. Stopping a
// stopped camera is a no-op.
func (c *Camera) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether the decode loop is active
func (c *Camera) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// LastError returns the most recent frame read failure, or nil. It is
// cleared when the camera is started.
func (c *Camera) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Camera) loop(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.running = false
		close(c.done)
		c.mu.Unlock()
	}()

	for {
		frame, err := c.source.NextFrame(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			c.logger.Warn("camera frame read failed", zap.Error(err))
			c.mu.Lock()
			c.lastErr = err
			c.mu.Unlock()
			select {
			case <-ctx.Done():
				return
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		barcode, ok := c.decoder.Decode(frame)
		if !ok {
			continue
		}
		if c.shouldEmit(barcode) {
			c.emit(barcode)
		}
	}
}

func (c *Camera) shouldEmit(barcode string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if barcode == c.lastCode && now.Sub(c.lastSeen) < c.cfg.DebounceInterval {
		c.lastSeen = now
		return false
	}
	c.lastCode = barcode
	c.lastSeen = now
	return true
}
