package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/ppm-tools/internal/pixel"
)

// ToImage converts a buffer into an opaque 8-bit NRGBA image.
//
// Channels are scaled from [0, MaxValue] to [0, 255]. Buffer (row, col) becomes
// image point (col, row).
func ToImage(buf *pixel.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	max := maxValue(buf)
	for row := 0; row < buf.Height; row++ {
		line := img.Pix[row*img.Stride:]
		for col, p := range buf.Row(row) {
			i := col * 4
			line[i+0] = scale8(p.R, max)
			line[i+1] = scale8(p.G, max)
			line[i+2] = scale8(p.B, max)
			line[i+3] = 0xff
		}
	}
	return img
}

// FromImage converts any image into an 8-bit buffer (MaxValue 255).
//
// Alpha is discarded after un-premultiplying, so a translucent pixel keeps its
// colour rather than fading toward black.
func FromImage(img image.Image) (*pixel.Buffer, error) {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()

	buf, err := pixel.New(bounds.Dx(), bounds.Dy(), 255)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	for row := 0; row < buf.Height; row++ {
		line := nrgba.Pix[row*nrgba.Stride:]
		for col := 0; col < buf.Width; col++ {
			i := col * 4
			buf.Set(row, col, pixel.RGB{R: int(line[i]), G: int(line[i+1]), B: int(line[i+2])})
		}
	}
	return buf, nil
}

// Import reads a PNG, JPEG or BMP file into a buffer.
//
// This is the entry point for getting ordinary images into the P3 pipeline:
// Import followed by ppm.Save produces a file every transformation accepts.
func Import(path string) (*pixel.Buffer, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return FromImage(img)
}
