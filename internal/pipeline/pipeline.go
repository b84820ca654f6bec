// Package pipeline runs the batch driver: load one P3 image, apply every
// transformation once and write one output file per transformation.
//
// The transformations are pure functions of the loaded buffer, so they run
// concurrently on the same read-only input. The first failure cancels the
// remaining work and is returned; there is no retry, since every failure
// here (bad file, empty image, unwritable directory) is deterministic.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/ppm-tools/internal/pixel"
	"github.com/ironsheep/ppm-tools/internal/ppm"
)

// Output file names, fixed by the batch driver contract.
const (
	InvertedFile   = "output_inverted.ppm"
	GrayscaleFile  = "output_grayscale.ppm"
	RotatedFile    = "output_rotated.ppm"
	EqualizedFile  = "output_equalized.ppm"
	BlackWhiteFile = "output_bw.ppm"
	BlurredFile    = "output_blurred.ppm"
)

// CompletionMessage is printed by the CLI after a successful run.
const CompletionMessage = "Processing complete. All processed images saved as .ppm files."

// Options configures a batch run.
type Options struct {
	Input     string // P3 file to load (Run only)
	OutputDir string // Directory for the output files; created if missing
	Angle     int    // Rotation for output_rotated.ppm
	Threshold int    // BlackWhite threshold
	Radius    int    // BoxBlur radius

	Logger *zerolog.Logger // Optional; nil disables logging
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// Output describes one written file.
type Output struct {
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MaxValue  int    `json:"max_value"`
}

// Report summarises a batch run. Outputs are in the fixed step order
// (inverted, grayscale, rotated, equalized, bw, blurred).
type Report struct {
	Input    string        `json:"input,omitempty"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Outputs  []Output      `json:"outputs"`
	Duration time.Duration `json:"duration_ns"`
}

type step struct {
	op    string
	file  string
	apply func(*pixel.Buffer) (*pixel.Buffer, error)
}

func steps(opts Options) []step {
	return []step{
		{"invert", InvertedFile, func(b *pixel.Buffer) (*pixel.Buffer, error) {
			return pixel.Invert(b), nil
		}},
		{"grayscale", GrayscaleFile, func(b *pixel.Buffer) (*pixel.Buffer, error) {
			return pixel.Grayscale(b), nil
		}},
		{"rotate", RotatedFile, func(b *pixel.Buffer) (*pixel.Buffer, error) {
			out, _, _ := pixel.Rotate(b, opts.Angle)
			return out, nil
		}},
		{"equalize", EqualizedFile, pixel.Equalize},
		{"black_white", BlackWhiteFile, func(b *pixel.Buffer) (*pixel.Buffer, error) {
			return pixel.BlackWhite(b, opts.Threshold), nil
		}},
		{"box_blur", BlurredFile, func(b *pixel.Buffer) (*pixel.Buffer, error) {
			return pixel.BoxBlur(b, opts.Radius), nil
		}},
	}
}

// Run loads opts.Input and processes it with Process.
func Run(ctx context.Context, opts Options) (*Report, error) {
	src, err := ppm.Load(opts.Input)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug().
		Str("input", opts.Input).
		Int("width", src.Width).
		Int("height", src.Height).
		Int("max_value", src.MaxValue).
		Msg("input loaded")

	report, err := Process(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	report.Input = opts.Input
	return report, nil
}

// Process applies every transformation to src and writes the results into
// opts.OutputDir. src is only read.
func Process(ctx context.Context, src *pixel.Buffer, opts Options) (*Report, error) {
	start := time.Now()
	log := opts.logger()
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	all := steps(opts)
	outputs := make([]Output, len(all))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range all {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := s.apply(src)
			if err != nil {
				return fmt.Errorf("%s: %w", s.op, err)
			}
			path := filepath.Join(opts.OutputDir, s.file)
			if err := ppm.Save(path, out); err != nil {
				return fmt.Errorf("%s: %w", s.op, err)
			}
			outputs[i] = Output{
				Operation: s.op,
				Path:      path,
				Width:     out.Width,
				Height:    out.Height,
				MaxValue:  out.MaxValue,
			}
			log.Debug().
				Str("operation", s.op).
				Str("output", path).
				Int("width", out.Width).
				Int("height", out.Height).
				Msg("output written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Width:    src.Width,
		Height:   src.Height,
		Outputs:  outputs,
		Duration: time.Since(start),
	}
	log.Info().
		Int("outputs", len(outputs)).
		Str("dir", opts.OutputDir).
		Dur("elapsed", report.Duration).
		Msg("batch complete")
	return report, nil
}
