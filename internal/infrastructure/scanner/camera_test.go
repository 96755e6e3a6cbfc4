package scanner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// fakeFrameSource replays a fixed sequence of frames, then blocks until
// the context is cancelled.
type fakeFrameSource struct {
	frames chan []byte
}

func newFakeFrameSource(frames ...[]byte) *fakeFrameSource {
	ch := make(chan []byte, len(frames))
	for _, f := range frames {
		ch <- f
	}
	return &fakeFrameSource{frames: ch}
}

func (s *fakeFrameSource) NextFrame(ctx context.Context) ([]byte, error) {
	select {
	case frame := <-s.frames:
		return frame, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *fakeFrameSource) Close() error { return nil }

// frameDecoder treats each frame's bytes as the barcode itself; empty
// frames decode to nothing.
type frameDecoder struct{}

func (frameDecoder) Decode(frame []byte) (string, bool) {
	if len(frame) == 0 {
		return "", false
	}
	return string(frame), true
}

func TestCamera_DecodesFrames(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &emitRecorder{}
	source := newFakeFrameSource([]byte("111222"), []byte(""), []byte("333444"))
	camera := NewCamera(DefaultCameraConfig(), source, frameDecoder{}, rec.emit, zap.NewNop())

	require.NoError(t, camera.Start(context.Background()))
	codes := rec.waitFor(t, 2, time.Second)
	camera.Stop()

	assert.Equal(t, []string{"111222", "333444"}, codes)
	assert.False(t, camera.Running())
}

func TestCamera_DebouncesRepeatedCode(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &emitRecorder{}
	source := newFakeFrameSource([]byte("111222"), []byte("111222"), []byte("111222"), []byte("555666"))
	camera := NewCamera(CameraConfig{DebounceInterval: time.Hour}, source, frameDecoder{}, rec.emit, zap.NewNop())

	require.NoError(t, camera.Start(context.Background()))
	codes := rec.waitFor(t, 2, time.Second)
	camera.Stop()

	assert.Equal(t, []string{"111222", "555666"}, codes)
}

func TestCamera_OutlivesStartContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &emitRecorder{}
	source := newFakeFrameSource([]byte("111222"))
	camera := NewCamera(DefaultCameraConfig(), source, frameDecoder{}, rec.emit, zap.NewNop())

	// An HTTP start request's context is cancelled as soon as the
	// handler returns; the subscription must not die with it.
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, camera.Start(ctx))
	cancel()

	codes := rec.waitFor(t, 1, time.Second)
	assert.Equal(t, []string{"111222"}, codes)

	time.Sleep(50 * time.Millisecond)
	assert.True(t, camera.Running())
	camera.Stop()
	assert.False(t, camera.Running())
}

func TestCamera_StopCancelsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &emitRecorder{}
	source := newFakeFrameSource()
	camera := NewCamera(DefaultCameraConfig(), source, frameDecoder{}, rec.emit, zap.NewNop())

	require.NoError(t, camera.Start(context.Background()))
	assert.True(t, camera.Running())

	// Stop must not hang even though the source never delivers a frame.
	done := make(chan struct{})
	go func() {
		camera.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	assert.False(t, camera.Running())
	assert.Empty(t, rec.snapshot())
}

func TestCamera_DoubleStartRejected(t *testing.T) {
	defer goleak.VerifyNone(t)

	camera := NewCamera(DefaultCameraConfig(), newFakeFrameSource(), frameDecoder{}, func(string) {}, zap.NewNop())
	require.NoError(t, camera.Start(context.Background()))
	assert.Error(t, camera.Start(context.Background()))
	camera.Stop()

	// restart after stop is allowed
	require.NoError(t, camera.Start(context.Background()))
	camera.Stop()
}

func TestCamera_SourceEOFEndsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &eofFrameSource{}
	camera := NewCamera(DefaultCameraConfig(), source, frameDecoder{}, func(string) {}, zap.NewNop())

	require.NoError(t, camera.Start(context.Background()))

	deadline := time.Now().Add(time.Second)
	for camera.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.False(t, camera.Running())
	camera.Stop()
}

type eofFrameSource struct{}

func (eofFrameSource) NextFrame(ctx context.Context) ([]byte, error) { return nil, io.EOF }
func (eofFrameSource) Close() error                                  { return nil }
