package pixel

// DefaultBlurRadius is the box blur radius used when none is configured.
const DefaultBlurRadius = 1

// BoxBlur averages each channel over the square window row±radius, col±radius.
//
// Only in-bounds neighbours are counted, so windows near the edges and corners
// shrink instead of being zero-padded. Each channel is the truncated mean
// floor(sum/count). The centre pixel is always in bounds, so count >= 1.
//
// Radius 0 returns an identical copy. Negative radii are treated as 0.
func BoxBlur(b *Buffer, radius int) *Buffer {
	w, h := b.Width, b.Height
	// A window wider than the image covers it entirely; clamping keeps
	// row+radius from overflowing.
	radius = clampInt(radius, 0, max(w, h))
	out := b.like(w, h)

	for row := 0; row < h; row++ {
		r0, r1 := clampInt(row-radius, 0, h-1), clampInt(row+radius, 0, h-1)
		for col := 0; col < w; col++ {
			c0, c1 := clampInt(col-radius, 0, w-1), clampInt(col+radius, 0, w-1)

			var sr, sg, sb int
			for ny := r0; ny <= r1; ny++ {
				for _, p := range b.Pix[ny*w+c0 : ny*w+c1+1] {
					sr += p.R
					sg += p.G
					sb += p.B
				}
			}
			count := (r1 - r0 + 1) * (c1 - c0 + 1)
			out.Pix[row*w+col] = RGB{R: sr / count, G: sg / count, B: sb / count}
		}
	}
	return out
}
