package scanner

import (
	"strings"
	"sync"
	"time"
)

// WedgeConfig tunes the keyboard wedge state machine
type WedgeConfig struct {
	// IdleTimeout flushes the buffer when the scanner pauses between
	// characters. Hardware scanners type far faster than humans, so a
	// short window separates scans from manual typing.
	IdleTimeout time.Duration
	// MinLength discards buffers too short to be a real barcode.
	MinLength int
}

// DefaultWedgeConfig matches common USB keyboard-wedge scanners
func DefaultWedgeConfig() WedgeConfig {
	return WedgeConfig{
		IdleTimeout: 120 * time.Millisecond,
		MinLength:   3,
	}
}

// Wedge accumulates keystrokes from a keyboard-emulating barcode scanner
// and emits complete barcodes. A barcode is complete when the scanner
// sends Enter or when the idle timeout elapses; either way each scan is
// emitted exactly once. Idle-flushed buffers shorter than MinLength are
// dropped as stray typing; Enter-terminated ones are always emitted.
type Wedge struct {
	mu        sync.Mutex
	cfg       WedgeConfig
	buf       strings.Builder
	timer     *time.Timer
	emit      func(barcode string)
	suspended bool
}

// NewWedge creates a wedge that delivers barcodes to emit
func NewWedge(cfg WedgeConfig, emit func(barcode string)) *Wedge {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultWedgeConfig().IdleTimeout
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultWedgeConfig().MinLength
	}
	return &Wedge{cfg: cfg, emit: emit}
}

// Key feeds one keystroke into the wedge. Enter ('\n' or '\r') flushes
// the buffer; printable characters accumulate and arm the idle timer.
func (w *Wedge) Key(r rune) {
	w.mu.Lock()

	if w.suspended {
		w.mu.Unlock()
		return
	}

	if r == '\n' || r == '\r' {
		barcode := w.takeLocked(false)
		w.mu.Unlock()
		if barcode != "" {
			w.emit(barcode)
		}
		return
	}

	if r < ' ' {
		w.mu.Unlock()
		return
	}

	w.buf.WriteRune(r)
	w.armTimerLocked()
	w.mu.Unlock()
}

// Input feeds a whole string of keystrokes
func (w *Wedge) Input(s string) {
	for _, r := range s {
		w.Key(r)
	}
}

// Flush forces out whatever is buffered, as if the idle timer fired
func (w *Wedge) Flush() {
	w.mu.Lock()
	barcode := w.takeLocked(true)
	w.mu.Unlock()
	if barcode != "" {
		w.emit(barcode)
	}
}

// Suspend discards wedge input until Resume. Used while a modal prompt
// holds the register, so stray scans cannot land in the wrong place.
func (w *Wedge) Suspend() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suspended = true
	w.stopTimerLocked()
	w.buf.Reset()
}

// Resume re-enables wedge input
func (w *Wedge) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suspended = false
}

// Suspended reports whether wedge input is currently discarded
func (w *Wedge) Suspended() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.suspended
}

// takeLocked drains the buffer and stops the timer. With enforceMin set,
// buffers under the minimum length come back empty; the Enter path skips
// the check because the scanner itself delimited the code.
func (w *Wedge) takeLocked(enforceMin bool) string {
	w.stopTimerLocked()
	barcode := w.buf.String()
	w.buf.Reset()
	if enforceMin && len(barcode) < w.cfg.MinLength {
		return ""
	}
	return barcode
}

func (w *Wedge) armTimerLocked() {
	w.stopTimerLocked()
	w.timer = time.AfterFunc(w.cfg.IdleTimeout, w.Flush)
}

func (w *Wedge) stopTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
