// Package pixel provides the in-memory RGB raster and the transformations applied to it.
//
// A Buffer is a rectangular grid of RGB triples plus the maximum channel value read from
// the source file. Every transformation in this package is a pure function: it reads the
// input buffer and returns a new, independently owned Buffer. The input is never mutated,
// so a single loaded buffer can be fanned out to several transformations at once.
//
// # Coordinate System
//
// Pixels are addressed as (row, col):
//   - row: vertical position, 0 = topmost row, row < Height
//   - col: horizontal position, 0 = leftmost column, col < Width
//
// Storage is a flat row-major slice, so (row, col) lives at Pix[row*Width+col].
//
// # Transformations
//
// Pointwise (no neighbour dependency):
//   - Invert: c -> MaxValue - c
//   - Grayscale: unweighted average floor((r+g+b)/3) on all three channels
//   - BlackWhite: pure white above a threshold average, pure black otherwise
//
// Geometric:
//   - Rotate: 90 (clockwise), 180 and 270 (counter-clockwise); other angles are identity
//
// Histogram:
//   - Equalize: red-channel histogram equalization through a 256-entry lookup table
//
// Convolution:
//   - BoxBlur: uniform square window, truncated average, window clipped at the borders
//
// # Error Handling
//
// The transformations are total over well-formed buffers. The only reported failure is
// Equalize on a buffer with no pixels, which returns an error matching ErrEmptyImage.
package pixel
