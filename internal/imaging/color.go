package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/ppm-tools/internal/pixel"
)

// RGBColor represents an RGB colour with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a colour in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult reports a sampled pixel in several representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // "#RRGGBB", scaled to 8 bits
	RGB  RGBColor  `json:"rgb"`  // 8-bit components
	Raw  pixel.RGB `json:"raw"`  // Channels as stored, in [0, MaxValue]
	Mean int       `json:"mean"` // floor((r+g+b)/3) on the raw channels
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor returns the colour at image point (x, y), i.e. buffer (row y, col x).
//
// Returns an error if the point lies outside the buffer.
func SampleColor(buf *pixel.Buffer, x, y int) (*ColorResult, error) {
	if !buf.InBounds(y, x) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, buf.Width, buf.Height)
	}

	raw := buf.At(y, x)
	max := maxValue(buf)
	c := colorful.Color{
		R: float64(raw.R) / float64(max),
		G: float64(raw.G) / float64(max),
		B: float64(raw.B) / float64(max),
	}
	h, s, l := c.Hsl()
	r8, g8, b8 := c.RGB255()

	return &ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		Raw:  raw,
		Mean: raw.Mean(),
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

// LabeledPoint is a sample position with an optional label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult pairs a colour sample with where it was taken.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains samples in the same order as the requested points.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several points. Any out-of-bounds point fails the whole call.
func SampleColorsMulti(buf *pixel.Buffer, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(buf, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

func maxValue(buf *pixel.Buffer) int {
	if buf.MaxValue <= 0 {
		return pixel.DefaultMaxValue
	}
	return buf.MaxValue
}

// scale8 maps v in [0, max] to [0, 255].
func scale8(v, max int) uint8 {
	if max == 255 {
		return uint8(v)
	}
	return uint8(v * 255 / max)
}
