package pixel

// Rotate turns the buffer by a multiple of 90 degrees and returns the rotated
// buffer together with its new width and height.
//
// Supported angles:
//   - 90: clockwise quarter turn; width and height swap
//   - 180: half turn; dimensions unchanged
//   - 270: counter-clockwise quarter turn; width and height swap
//
// Any other angle, including 0, returns an unrotated copy with the original
// dimensions. Every output pixel comes from exactly one input pixel.
//
// # Mapping
//
// For an input of size W x H, with output row y and output column x:
//
//	 90: out[y][x] = in[H-1-x][y]      y < W, x < H
//	180: out[y][x] = in[H-1-y][W-1-x]  y < H, x < W
//	270: out[y][x] = in[x][W-1-y]      y < W, x < H
func Rotate(b *Buffer, angle int) (*Buffer, int, int) {
	w, h := b.Width, b.Height

	switch angle {
	case 90:
		out := b.like(h, w)
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				out.Pix[y*h+x] = b.Pix[(h-1-x)*w+y]
			}
		}
		return out, h, w
	case 180:
		out := b.like(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = b.Pix[(h-1-y)*w+(w-1-x)]
			}
		}
		return out, w, h
	case 270:
		out := b.like(h, w)
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				out.Pix[y*h+x] = b.Pix[x*w+(w-1-y)]
			}
		}
		return out, h, w
	default:
		return b.Clone(), w, h
	}
}
