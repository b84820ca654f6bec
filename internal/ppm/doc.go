// Package ppm reads and writes the ASCII Portable Pixel Map format (P3).
//
// The file layout is:
//
//	P3
//	<width> <height>
//	<maxValue>
//	<r>
//	<g>
//	<b>
//	...
//
// with width*height RGB triples in row-major order. Encode writes exactly that
// layout, one integer per line. Decode accepts any whitespace between tokens
// and skips '#' comments, so files produced by other tools load as well.
//
// Binary PPM (P6) is not supported.
//
// # Errors
//
// Decode reports two error kinds, both matchable with errors.As or errors.Is:
//   - *FormatError (ErrFormat): wrong magic token, non-integer or non-positive
//     header fields, or a sample that is not an integer in [0, maxValue]
//   - *TruncatedDataError (ErrTruncated): fewer than width*height*3 samples
package ppm
