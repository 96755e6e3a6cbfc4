package scanner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type sinkRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *sinkRecorder) sink(ctx context.Context, barcode string, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, source+":"+barcode)
}

func (r *sinkRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

func TestRouter_AllSources(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &sinkRecorder{}
	source := newFakeFrameSource([]byte("camera1"))
	router := NewRouter(
		WedgeConfig{IdleTimeout: time.Hour, MinLength: 3},
		DefaultCameraConfig(),
		source, frameDecoder{}, rec.sink, zap.NewNop(),
	)

	router.Wedge().Input("wedge1\n")
	router.Submit(context.Background(), "manual1")

	require.NoError(t, router.StartCamera(context.Background()))
	deadline := time.Now().Add(time.Second)
	for len(rec.snapshot()) < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	router.Close()

	entries := rec.snapshot()
	require.Len(t, entries, 3)
	assert.Contains(t, entries, "wedge:wedge1")
	assert.Contains(t, entries, "manual:manual1")
	assert.Contains(t, entries, "camera:camera1")
}

func TestRouter_NoCamera(t *testing.T) {
	rec := &sinkRecorder{}
	router := NewRouter(
		DefaultWedgeConfig(), DefaultCameraConfig(),
		nil, nil, rec.sink, zap.NewNop(),
	)

	assert.ErrorIs(t, router.StartCamera(context.Background()), ErrNoCamera)
	router.StopCamera()

	status := router.Status()
	assert.False(t, status.CameraAttached)
	assert.False(t, status.CameraRunning)
}

func TestRouter_PauseWedge(t *testing.T) {
	rec := &sinkRecorder{}
	router := NewRouter(
		WedgeConfig{IdleTimeout: time.Hour, MinLength: 3},
		DefaultCameraConfig(),
		nil, nil, rec.sink, zap.NewNop(),
	)

	router.PauseWedge()
	assert.True(t, router.Status().WedgeSuspended)

	router.Wedge().Input("dropped\n")
	// manual entry still works while the wedge is paused
	router.Submit(context.Background(), "manual1")

	router.ResumeWedge()
	router.Wedge().Input("wedge1\n")

	assert.Equal(t, []string{"manual:manual1", "wedge:wedge1"}, rec.snapshot())
}
