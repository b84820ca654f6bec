package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/ppm-tools/internal/pixel"
)

func decodePreview(t *testing.T, result *PreviewResult) {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if img.Bounds().Dx() != result.Width || img.Bounds().Dy() != result.Height {
		t.Errorf("png is %v, result says %dx%d", img.Bounds(), result.Width, result.Height)
	}
}

func TestPreview(t *testing.T) {
	result, err := Preview(createPatternBuffer(t, 10, 8), nil, 1.0)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if result.Width != 10 || result.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 10x8", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	decodePreview(t, result)
}

func TestPreview_Scale(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		w, h  int
	}{
		{"double", 2.0, 20, 16},
		{"half", 0.5, 5, 4},
		{"zero keeps size", 0, 10, 8},
		{"tiny clamps to one pixel", 0.01, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Preview(createPatternBuffer(t, 10, 8), nil, tt.scale)
			if err != nil {
				t.Fatalf("Preview failed: %v", err)
			}
			if result.Width != tt.w || result.Height != tt.h {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.w, tt.h)
			}
		})
	}
}

func TestPreview_Region(t *testing.T) {
	result, err := Preview(createPatternBuffer(t, 10, 8), &Region{X1: 0, Y1: 0, X2: 5, Y2: 4}, 1.0)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if result.Width != 5 || result.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 5x4", result.Width, result.Height)
	}
	decodePreview(t, result)
}

func TestPreview_InvalidRegion(t *testing.T) {
	buf := createPatternBuffer(t, 10, 8)

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 negative", Region{X1: -1, Y1: 0, X2: 5, Y2: 5}},
		{"x2 too large", Region{X1: 0, Y1: 0, X2: 11, Y2: 5}},
		{"y2 too large", Region{X1: 0, Y1: 0, X2: 5, Y2: 9}},
		{"inverted", Region{X1: 5, Y1: 0, X2: 2, Y2: 5}},
		{"empty", Region{X1: 2, Y1: 2, X2: 2, Y2: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := tt.region
			if _, err := Preview(buf, &region, 1.0); err == nil {
				t.Error("Preview should fail for an invalid region")
			}
		})
	}
}

func TestPreview_EmptyBuffer(t *testing.T) {
	if _, err := Preview(&pixel.Buffer{}, nil, 1.0); !errors.Is(err, pixel.ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Export(createPatternBuffer(t, 6, 4), path, 2.0); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("export is not a png: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Errorf("bounds: got %v, want 12x8", img.Bounds())
	}
}

func TestExport_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	if err := Export(createPatternBuffer(t, 2, 2), path, 1.0); err == nil {
		t.Error("Export should fail for an unknown extension")
	}
}
