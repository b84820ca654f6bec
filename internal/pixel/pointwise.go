package pixel

// DefaultThreshold is the mean intensity above which BlackWhite emits white.
const DefaultThreshold = 127

// Invert replaces every channel c with MaxValue - c.
//
// A buffer without a max value is treated as 8-bit (255). Inverting twice
// returns the original buffer.
func Invert(b *Buffer) *Buffer {
	max := b.maxValue()
	return mapPixels(b, func(p RGB) RGB {
		return RGB{R: max - p.R, G: max - p.G, B: max - p.B}
	})
}

// Grayscale sets all three channels of each pixel to floor((r+g+b)/3).
//
// The average is unweighted; this is not perceptual luminance. The result keeps
// the three-channel layout and Grayscale is idempotent.
func Grayscale(b *Buffer) *Buffer {
	return mapPixels(b, func(p RGB) RGB {
		return Gray(p.Mean())
	})
}

// BlackWhite thresholds each pixel on its truncated channel average.
//
// Pixels whose average is strictly greater than threshold become white
// (MaxValue on every channel, 255 for 8-bit images); all others become black.
func BlackWhite(b *Buffer, threshold int) *Buffer {
	white := Gray(b.maxValue())
	return mapPixels(b, func(p RGB) RGB {
		if p.Mean() > threshold {
			return white
		}
		return RGB{}
	})
}

// mapPixels applies fn to every pixel of b and returns the result as a new buffer.
func mapPixels(b *Buffer, fn func(RGB) RGB) *Buffer {
	out := b.like(b.Width, b.Height)
	for i, p := range b.Pix {
		out.Pix[i] = fn(p)
	}
	return out
}
