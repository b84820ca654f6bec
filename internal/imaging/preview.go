package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/ppm-tools/internal/pixel"
)

// Region represents a rectangular area of an image.
//
// (X1, Y1) is the top-left corner (inclusive); (X2, Y2) is the bottom-right
// corner (exclusive).
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// PreviewResult contains a rendered PNG of a buffer.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview renders buf, or a region of it, as a base64-encoded PNG.
//
// Parameters:
//   - buf: the buffer to render.
//   - region: optional crop; nil renders the whole buffer.
//   - scale: resize factor. Values <= 0 or 1.0 keep the original size. Scaling
//     uses nearest-neighbour sampling so individual pixels stay visible.
func Preview(buf *pixel.Buffer, region *Region, scale float64) (*PreviewResult, error) {
	img, err := render(buf, region, scale)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Export writes buf to path as an ordinary image file. The encoder is picked
// from the file extension (.png, .jpg, .gif, .bmp, .tif).
func Export(buf *pixel.Buffer, path string, scale float64) error {
	img, err := render(buf, nil, scale)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func render(buf *pixel.Buffer, region *Region, scale float64) (image.Image, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("cannot render: %w", pixel.ErrEmptyImage)
	}

	var img image.Image = ToImage(buf)
	if region != nil {
		if region.X1 < 0 || region.Y1 < 0 || region.X2 > buf.Width || region.Y2 > buf.Height {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds %dx%d",
				region.X1, region.Y1, region.X2, region.Y2, buf.Width, buf.Height)
		}
		if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
			return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
		}
		img = imaging.Crop(img, image.Rect(region.X1, region.Y1, region.X2, region.Y2))
	}

	if scale > 0 && scale != 1.0 {
		w := int(float64(img.Bounds().Dx()) * scale)
		h := int(float64(img.Bounds().Dy()) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		img = imaging.Resize(img, w, h, imaging.NearestNeighbor)
	}
	return img, nil
}
