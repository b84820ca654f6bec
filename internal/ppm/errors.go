package ppm

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("invalid format")

	// ErrTruncated matches every *TruncatedDataError.
	ErrTruncated = errors.New("truncated pixel data")
)

// FormatError reports a malformed header or sample.
type FormatError struct {
	Field  string // "magic", "width", "height", "max value" or "sample"
	Token  string // Offending token; empty at end of input
	Reason string
}

func (e *FormatError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid format: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid format: %s %q: %s", e.Field, e.Token, e.Reason)
}

// Is makes errors.Is(err, ErrFormat) succeed for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// TruncatedDataError reports that the input ended before all samples were read.
type TruncatedDataError struct {
	Want int // Samples required by the header (width*height*3)
	Got  int // Samples actually read
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("truncated pixel data: got %d of %d samples", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrTruncated) succeed for any TruncatedDataError.
func (e *TruncatedDataError) Is(target error) bool {
	return target == ErrTruncated
}
