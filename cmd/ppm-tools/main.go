package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ironsheep/ppm-tools/internal/config"
	"github.com/ironsheep/ppm-tools/internal/imaging"
	"github.com/ironsheep/ppm-tools/internal/logging"
	"github.com/ironsheep/ppm-tools/internal/pipeline"
	"github.com/ironsheep/ppm-tools/internal/ppm"
	"github.com/ironsheep/ppm-tools/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "ppm-tools %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		case "serve":
			return runServe(ctx, args[1:], getenv, stderr)
		case "convert":
			return runConvert(args[1:], stdout, stderr)
		}
	}
	return runBatch(ctx, args, getenv, stdout, stderr)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "ppm-tools - plain-text PPM (P3) image transformations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ppm-tools [flags]                      Transform -input into the six output_*.ppm files")
	fmt.Fprintln(w, "  ppm-tools serve [flags]                Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  ppm-tools convert <in> <out> [scale]   Convert between P3 and PNG/JPEG/BMP")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -input <file>        Input P3 file (default example.ppm)")
	fmt.Fprintln(w, "  -out <dir>           Output directory (default .)")
	fmt.Fprintln(w, "  -angle <deg>         Rotation for output_rotated.ppm (default 90)")
	fmt.Fprintln(w, "  -threshold <n>       Black/white threshold (default 127)")
	fmt.Fprintln(w, "  -radius <n>          Box blur radius (default 1)")
	fmt.Fprintln(w, "  -log-level <level>   debug, info, warn or error (default info)")
	fmt.Fprintln(w, "  -log-format <fmt>    json or console (default json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s, %s, %s, %s\n",
		config.EnvInput, config.EnvOutputDir, config.EnvLogLevel, config.EnvLogFormat)
}

func runBatch(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := config.Load("ppm-tools", args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := logging.New(stderr, cfg.Log)
	logger.Debug().Str("version", Version).Str("config", cfg.String()).Msg("starting batch")

	_, err = pipeline.Run(ctx, pipeline.Options{
		Input:     cfg.Input,
		OutputDir: cfg.OutputDir,
		Angle:     cfg.Angle,
		Threshold: cfg.Threshold,
		Radius:    cfg.Radius,
		Logger:    &logger,
	})
	if err != nil {
		logger.Error().Err(err).Str("input", cfg.Input).Msg("batch failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, pipeline.CompletionMessage)
	return 0
}

func runServe(ctx context.Context, args []string, getenv func(string) string, stderr io.Writer) int {
	cfg, err := config.Load("ppm-tools serve", args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	// Logging goes to stderr; stdout is for MCP protocol
	logger := logging.New(stderr, cfg.Log)
	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("PPM MCP server starting")

	server.Version = Version
	srv := server.New(server.WithLogger(logger))
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}

func runConvert(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(stderr, "Usage: ppm-tools convert <in> <out> [scale]")
		return 2
	}
	in, out := args[0], args[1]

	scale := 1.0
	if len(args) == 3 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil || v <= 0 {
			fmt.Fprintf(stderr, "Error: invalid scale %q\n", args[2])
			return 2
		}
		scale = v
	}

	if err := convert(in, out, scale); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Converted %s to %s\n", in, out)
	return 0
}

// convert imports in as P3 when out ends in .ppm, otherwise exports the P3
// file in to the image format named by out's extension.
func convert(in, out string, scale float64) error {
	if strings.EqualFold(filepath.Ext(out), ".ppm") {
		buf, err := imaging.Import(in)
		if err != nil {
			return err
		}
		return ppm.Save(out, buf)
	}

	buf, err := ppm.Load(in)
	if err != nil {
		return err
	}
	return imaging.Export(buf, out, scale)
}
