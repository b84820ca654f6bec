// Package config holds the settings for the ppm-tools binary.
//
// Values come from three layers, later ones winning:
//  1. Built-in defaults (example.ppm, current directory, 90 degrees, threshold 127, radius 1)
//  2. Environment variables (PPM_TOOLS_INPUT, PPM_TOOLS_OUTPUT_DIR, PPM_TOOLS_LOG_LEVEL,
//     PPM_TOOLS_LOG_FORMAT)
//  3. Command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/ppm-tools/internal/logging"
	"github.com/ironsheep/ppm-tools/internal/pixel"
)

// Environment variable names.
const (
	EnvInput     = "PPM_TOOLS_INPUT"
	EnvOutputDir = "PPM_TOOLS_OUTPUT_DIR"
	EnvLogLevel  = "PPM_TOOLS_LOG_LEVEL"
	EnvLogFormat = "PPM_TOOLS_LOG_FORMAT"
)

// DefaultInput is the file the batch driver processes when none is given.
const DefaultInput = "example.ppm"

// DefaultAngle is the rotation used for output_rotated.ppm.
const DefaultAngle = 90

// Config is the resolved configuration for one run.
type Config struct {
	Input     string
	OutputDir string
	Angle     int
	Threshold int
	Radius    int
	Log       logging.Options

	// Args holds positional arguments left after flag parsing.
	Args []string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		OutputDir: ".",
		Angle:     DefaultAngle,
		Threshold: pixel.DefaultThreshold,
		Radius:    pixel.DefaultBlurRadius,
		Log:       logging.Options{Level: "info", Format: "json"},
	}
}

// Load resolves the configuration from getenv and args.
//
// getenv is usually os.Getenv; tests pass a map lookup. Flag usage and parse
// errors are written to output. flag.ErrHelp is returned unchanged for -h.
func Load(name string, args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	cfg := Default()
	cfg.applyEnv(getenv)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Input, "input", cfg.Input, "input P3 image")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for output_*.ppm files")
	fs.IntVar(&cfg.Angle, "angle", cfg.Angle, "rotation angle for output_rotated.ppm (0, 90, 180 or 270)")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "black/white threshold on the channel average")
	fs.IntVar(&cfg.Radius, "radius", cfg.Radius, "box blur radius")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "json or console")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no operation can use.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	if c.Radius < 0 {
		return fmt.Errorf("blur radius %d must not be negative", c.Radius)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
}

// String renders the configuration for debug logs.
func (c *Config) String() string {
	return "input=" + c.Input +
		" out=" + c.OutputDir +
		" angle=" + strconv.Itoa(c.Angle) +
		" threshold=" + strconv.Itoa(c.Threshold) +
		" radius=" + strconv.Itoa(c.Radius)
}
