package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/ironsheep/ppm-tools/internal/pixel"
	"github.com/ironsheep/ppm-tools/internal/ppm"
)

func writeInput(t *testing.T, dir string) (string, *pixel.Buffer) {
	t.Helper()
	src, err := pixel.FromRows([][]pixel.RGB{
		{{R: 10, G: 10, B: 10}, {R: 20, G: 20, B: 20}, {R: 200, G: 150, B: 100}},
		{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}, {R: 90, G: 30, B: 60}},
	}, 255)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	path := filepath.Join(dir, "example.ppm")
	if err := ppm.Save(path, src); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return path, src
}

func defaultOptions(input, outDir string) Options {
	return Options{
		Input:     input,
		OutputDir: outDir,
		Angle:     90,
		Threshold: pixel.DefaultThreshold,
		Radius:    pixel.DefaultBlurRadius,
	}
}

func TestRun_WritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	input, src := writeInput(t, dir)
	outDir := filepath.Join(dir, "out")

	report, err := Run(context.Background(), defaultOptions(input, outDir))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Input != input || report.Width != 3 || report.Height != 2 {
		t.Errorf("report header: got %q %dx%d", report.Input, report.Width, report.Height)
	}

	rotated, _, _ := pixel.Rotate(src, 90)
	equalized, err := pixel.Equalize(src)
	if err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}
	want := map[string]*pixel.Buffer{
		InvertedFile:   pixel.Invert(src),
		GrayscaleFile:  pixel.Grayscale(src),
		RotatedFile:    rotated,
		EqualizedFile:  equalized,
		BlackWhiteFile: pixel.BlackWhite(src, 127),
		BlurredFile:    pixel.BoxBlur(src, 1),
	}

	if len(report.Outputs) != len(want) {
		t.Fatalf("expected %d outputs, got %d", len(want), len(report.Outputs))
	}
	for name, expected := range want {
		got, err := ppm.Load(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestRun_ReportOrderAndDimensions(t *testing.T) {
	dir := t.TempDir()
	input, _ := writeInput(t, dir)

	report, err := Run(context.Background(), defaultOptions(input, dir))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantOps := []string{"invert", "grayscale", "rotate", "equalize", "black_white", "box_blur"}
	for i, out := range report.Outputs {
		if out.Operation != wantOps[i] {
			t.Errorf("output %d: got %s, want %s", i, out.Operation, wantOps[i])
		}
	}
	rot := report.Outputs[2]
	if rot.Width != 2 || rot.Height != 3 {
		t.Errorf("rotated dims: got %dx%d, want 2x3", rot.Width, rot.Height)
	}
	if filepath.Base(rot.Path) != RotatedFile {
		t.Errorf("rotated path: got %s", rot.Path)
	}
}

func TestRun_CustomParameters(t *testing.T) {
	dir := t.TempDir()
	input, src := writeInput(t, dir)

	opts := defaultOptions(input, dir)
	opts.Angle = 180
	opts.Threshold = 10
	opts.Radius = 0
	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	blurred, err := ppm.Load(filepath.Join(dir, BlurredFile))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !blurred.Equal(src) {
		t.Error("radius 0 blur should reproduce the input")
	}

	rotated, err := ppm.Load(filepath.Join(dir, RotatedFile))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rotated.At(0, 0) != src.At(1, 2) {
		t.Errorf("180 rotation: got %v at (0,0), want %v", rotated.At(0, 0), src.At(1, 2))
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), defaultOptions(filepath.Join(dir, "missing.ppm"), dir))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, InvertedFile)); statErr == nil {
		t.Error("outputs written despite load failure")
	}
}

func TestRun_MalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.ppm")
	if err := os.WriteFile(input, []byte("P3\n2 2\n255\n1 2 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Run(context.Background(), defaultOptions(input, dir))
	if !errors.Is(err, ppm.ErrTruncated) {
		t.Errorf("got %v, want ppm.ErrTruncated", err)
	}
}

func TestProcess_EmptyBufferFailsEqualize(t *testing.T) {
	dir := t.TempDir()
	_, err := Process(context.Background(), &pixel.Buffer{MaxValue: 255}, defaultOptions("", dir))
	if !errors.Is(err, pixel.ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	_, src := writeInput(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, src, defaultOptions("", filepath.Join(dir, "out")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestProcess_Logs(t *testing.T) {
	dir := t.TempDir()
	_, src := writeInput(t, dir)

	var logs bytes.Buffer
	logger := zerolog.New(zerolog.SyncWriter(&logs)).Level(zerolog.DebugLevel)
	opts := defaultOptions("", dir)
	opts.Logger = &logger

	if _, err := Process(context.Background(), src, opts); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := strings.Count(logs.String(), "output written"); got != 6 {
		t.Errorf("expected 6 output log lines, got %d", got)
	}
	if !strings.Contains(logs.String(), "batch complete") {
		t.Error("missing batch complete log line")
	}
}
