package pixel

import (
	"errors"
	"fmt"
)

// ErrEmptyImage is returned by operations that need at least one pixel.
var ErrEmptyImage = errors.New("empty image")

// ErrInvalidBuffer reports a buffer whose shape or channel values break the Buffer invariants.
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// ImageError describes a failed operation on a buffer.
//
// It wraps one of the package sentinels so callers can match with errors.Is,
// while Op records which operation refused the buffer.
type ImageError struct {
	Op     string // Operation name, e.g. "equalize"
	Detail string // Optional extra context
	Err    error  // ErrEmptyImage or ErrInvalidBuffer
}

func (e *ImageError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

func invalidf(op, format string, args ...interface{}) error {
	return &ImageError{Op: op, Detail: fmt.Sprintf(format, args...), Err: ErrInvalidBuffer}
}
