package scanner

import "errors"

// ErrNoCamera is returned when no camera hardware is attached
var ErrNoCamera = errors.New("no camera attached")
