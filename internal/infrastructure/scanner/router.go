package scanner

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Sink receives barcodes from all input sources
type Sink func(ctx context.Context, barcode string, source string)

// Input source names as reported in scan outcomes and logs
const (
	SourceWedge  = "wedge"
	SourceCamera = "camera"
	SourceManual = "manual"
)

// Router fans barcodes from the keyboard wedge, the camera, and manual
// entry into a single sink. The wedge pauses while a modal prompt is
// open; manual entry bypasses the pause so the prompt itself still works.
type Router struct {
	mu     sync.Mutex
	wedge  *Wedge
	camera *Camera
	sink   Sink
	logger *zap.Logger
}

// RouterStatus is a point-in-time view of the input sources
type RouterStatus struct {
	WedgeSuspended  bool   `json:"wedgeSuspended"`
	CameraRunning   bool   `json:"cameraRunning"`
	CameraAttached  bool   `json:"cameraAttached"`
	CameraLastError string `json:"cameraLastError,omitempty"`
}

// NewRouter creates a router delivering to sink. camera may be nil when
// no camera hardware is attached.
func NewRouter(wedgeCfg WedgeConfig, cameraCfg CameraConfig, source FrameSource, decoder Decoder, sink Sink, logger *zap.Logger) *Router {
	r := &Router{
		sink:   sink,
		logger: logger,
	}
	r.wedge = NewWedge(wedgeCfg, func(barcode string) {
		r.deliver(context.Background(), barcode, SourceWedge)
	})
	if source != nil && decoder != nil {
		r.camera = NewCamera(cameraCfg, source, decoder, func(barcode string) {
			r.deliver(context.Background(), barcode, SourceCamera)
		}, logger)
	}
	return r
}

// Wedge returns the keyboard wedge for keystroke feeding
func (r *Router) Wedge() *Wedge {
	return r.wedge
}

// Submit routes a manually entered barcode
func (r *Router) Submit(ctx context.Context, barcode string) {
	r.deliver(ctx, barcode, SourceManual)
}

// StartCamera begins the camera decode loop
func (r *Router) StartCamera(ctx context.Context) error {
	if r.camera == nil {
		return ErrNoCamera
	}
	return r.camera.Start(ctx)
}

// StopCamera cancels the camera decode loop
func (r *Router) StopCamera() {
	if r.camera != nil {
		r.camera.Stop()
	}
}

// PauseWedge discards wedge input until ResumeWedge
func (r *Router) PauseWedge() {
	r.wedge.Suspend()
}

// ResumeWedge re-enables wedge input
func (r *Router) ResumeWedge() {
	r.wedge.Resume()
}

// Status reports the state of the input sources
func (r *Router) Status() RouterStatus {
	status := RouterStatus{
		WedgeSuspended: r.wedge.Suspended(),
		CameraAttached: r.camera != nil,
	}
	if r.camera != nil {
		status.CameraRunning = r.camera.Running()
		if err := r.camera.LastError(); err != nil {
			status.CameraLastError = err.Error()
		}
	}
	return status
}

// Close stops all sources
func (r *Router) Close() {
	r.StopCamera()
	r.wedge.Suspend()
}

func (r *Router) deliver(ctx context.Context, barcode string, source string) {
	if barcode == "" {
		return
	}
	r.logger.Debug("barcode routed",
		zap.String("barcode", barcode),
		zap.String("source", source))
	r.sink(ctx, barcode, source)
}
