package pixel

import "math"

// Levels is the number of histogram buckets used by Equalize.
const Levels = 256

// Histogram counts red-channel values over every pixel of b.
//
// Values above 255 (possible only when MaxValue > 255) are counted in the last bucket.
func Histogram(b *Buffer) [Levels]int {
	var hist [Levels]int
	for _, p := range b.Pix {
		hist[bucket(p.R)]++
	}
	return hist
}

// Cumulative returns the running sum C[i] = hist[0] + ... + hist[i].
func Cumulative(hist [Levels]int) [Levels]int {
	var cum [Levels]int
	total := 0
	for i, n := range hist {
		total += n
		cum[i] = total
	}
	return cum
}

// EqualizationLUT builds the lookup table LUT[i] = floor(C[i] * 255/C[255]).
//
// The table is non-decreasing and every entry lies in [0, 255]. It fails with
// ErrEmptyImage when the cumulative histogram counts no pixels.
func EqualizationLUT(cum [Levels]int) ([Levels]int, error) {
	var lut [Levels]int
	total := cum[Levels-1]
	if total == 0 {
		return lut, &ImageError{Op: "equalize", Err: ErrEmptyImage}
	}
	scale := float64(Levels-1) / float64(total)
	for i, c := range cum {
		v := int(math.Floor(float64(c) * scale))
		lut[i] = clampInt(v, 0, Levels-1)
	}
	return lut, nil
}

// Equalize performs histogram equalization on the red channel.
//
// The buffer is expected to be grayscale already: green and blue are ignored
// on input. Each output pixel has all three channels set to LUT[red], so the
// result is grayscale with MaxValue 255.
//
// A buffer with no pixels returns an error matching ErrEmptyImage.
func Equalize(b *Buffer) (*Buffer, error) {
	lut, err := EqualizationLUT(Cumulative(Histogram(b)))
	if err != nil {
		return nil, err
	}

	out := b.like(b.Width, b.Height)
	out.MaxValue = Levels - 1
	for i, p := range b.Pix {
		out.Pix[i] = Gray(lut[bucket(p.R)])
	}
	return out, nil
}

func bucket(v int) int {
	return clampInt(v, 0, Levels-1)
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
