// Package imaging connects PPM pixel buffers to the rest of the Go image ecosystem.
//
// It provides the supporting operations around the core transformations in package
// pixel: a path-keyed buffer cache, file metadata, colour sampling, PNG previews and
// import from PNG, JPEG and BMP files. Nothing here changes pixel data; buffers handed
// out by the cache are shared and must be treated as read-only.
//
// # Coordinate System
//
// Sampling and preview regions use image coordinates:
//   - X: column (0 = leftmost pixel)
//   - Y: row (0 = topmost pixel)
//   - For regions, (X1,Y1) is inclusive (top-left), (X2,Y2) is exclusive (bottom-right)
//
// Buffer pixel (row, col) is image point (X=col, Y=row).
//
// # Thread Safety
//
// BufferCache is safe for concurrent use. The remaining functions are stateless.
//
// # Colour Depth
//
// PPM files may declare any max value up to 65535. Conversions to image.Image and
// colour reports scale channels to 8 bits: v8 = v * 255 / maxValue.
package imaging
