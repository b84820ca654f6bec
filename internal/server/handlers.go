package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/ppm-tools/internal/imaging"
	"github.com/ironsheep/ppm-tools/internal/pipeline"
	"github.com/ironsheep/ppm-tools/internal/pixel"
	"github.com/ironsheep/ppm-tools/internal/ppm"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "ppm_load", "ppm_rotate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArguments marks argument problems so they map to -32602 rather
// than a tool failure.
var errInvalidArguments = errors.New("invalid arguments")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads buffers from cache as needed
//  4. Calls the pixel, ppm, imaging or pipeline function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Inspection
	case "ppm_load":
		return s.handlePPMLoad(args)
	case "ppm_sample_color":
		return s.handlePPMSampleColor(args)
	case "ppm_sample_colors_multi":
		return s.handlePPMSampleColorsMulti(args)

	// Transformations
	case "ppm_invert":
		return s.handleTransform(args, "invert", func(b *pixel.Buffer, _ transformArgs) (*pixel.Buffer, error) {
			return pixel.Invert(b), nil
		})
	case "ppm_grayscale":
		return s.handleTransform(args, "grayscale", func(b *pixel.Buffer, _ transformArgs) (*pixel.Buffer, error) {
			return pixel.Grayscale(b), nil
		})
	case "ppm_black_white":
		return s.handleTransform(args, "black_white", func(b *pixel.Buffer, a transformArgs) (*pixel.Buffer, error) {
			return pixel.BlackWhite(b, intOr(a.Threshold, pixel.DefaultThreshold)), nil
		})
	case "ppm_rotate":
		return s.handleTransform(args, "rotate", func(b *pixel.Buffer, a transformArgs) (*pixel.Buffer, error) {
			out, _, _ := pixel.Rotate(b, intOr(a.Angle, 90))
			return out, nil
		})
	case "ppm_equalize":
		return s.handleTransform(args, "equalize", func(b *pixel.Buffer, a transformArgs) (*pixel.Buffer, error) {
			if a.GrayscaleFirst {
				b = pixel.Grayscale(b)
			}
			return pixel.Equalize(b)
		})
	case "ppm_box_blur":
		return s.handleTransform(args, "box_blur", func(b *pixel.Buffer, a transformArgs) (*pixel.Buffer, error) {
			return pixel.BoxBlur(b, intOr(a.Radius, pixel.DefaultBlurRadius)), nil
		})

	// Rendering and conversion
	case "ppm_preview":
		return s.handlePPMPreview(args)
	case "ppm_convert":
		return s.handlePPMConvert(args)

	// Batch
	case "ppm_process_all":
		return s.handlePPMProcessAll(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments and checks the required path.
func decodeArgs(args json.RawMessage, v interface{ inputPath() string }) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	if v.inputPath() == "" {
		return fmt.Errorf("%w: path is required", errInvalidArguments)
	}
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// === Inspection Handlers ===

type ppmLoadArgs struct {
	Path string `json:"path"`
}

func (a *ppmLoadArgs) inputPath() string { return a.Path }

func (s *Server) handlePPMLoad(args json.RawMessage) (interface{}, error) {
	var a ppmLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type ppmSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (a *ppmSampleColorArgs) inputPath() string { return a.Path }

func (s *Server) handlePPMSampleColor(args json.RawMessage) (interface{}, error) {
	var a ppmSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type ppmSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (a *ppmSampleColorsMultiArgs) inputPath() string { return a.Path }

func (s *Server) handlePPMSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a ppmSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(buf, points)
}

// === Transformation Handlers ===

// transformArgs is shared by every single-output transformation tool.
// Pointer fields distinguish "not given" from an explicit zero.
type transformArgs struct {
	Path           string `json:"path"`
	Output         string `json:"output"`
	Threshold      *int   `json:"threshold,omitempty"`
	Angle          *int   `json:"angle,omitempty"`
	Radius         *int   `json:"radius,omitempty"`
	GrayscaleFirst bool   `json:"grayscale_first,omitempty"`
}

func (a *transformArgs) inputPath() string { return a.Path }

// TransformResult describes the file written by a transformation tool.
type TransformResult struct {
	Operation string `json:"operation"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MaxValue  int    `json:"max_value"`
}

type transformFunc func(*pixel.Buffer, transformArgs) (*pixel.Buffer, error)

// handleTransform loads path through the cache, applies fn and writes the
// result to output as P3. The cached entry for output is dropped so a later
// ppm_load sees the new file.
func (s *Server) handleTransform(args json.RawMessage, op string, fn transformFunc) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("%w: output is required", errInvalidArguments)
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := fn(src, a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ppm.Save(a.Output, out); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Output)

	s.logger.Debug().
		Str("operation", op).
		Str("input", a.Path).
		Str("output", a.Output).
		Int("width", out.Width).
		Int("height", out.Height).
		Msg("transform written")

	return &TransformResult{
		Operation: op,
		Input:     a.Path,
		Output:    a.Output,
		Width:     out.Width,
		Height:    out.Height,
		MaxValue:  out.MaxValue,
	}, nil
}

// === Rendering and Conversion Handlers ===

type ppmPreviewArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region,omitempty"`
	Scale  float64         `json:"scale"`
}

func (a *ppmPreviewArgs) inputPath() string { return a.Path }

func (s *Server) handlePPMPreview(args json.RawMessage) (interface{}, error) {
	var a ppmPreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(buf, a.Region, a.Scale)
}

type ppmConvertArgs struct {
	Path   string  `json:"path"`
	Output string  `json:"output"`
	Scale  float64 `json:"scale"`
}

func (a *ppmConvertArgs) inputPath() string { return a.Path }

// ConvertResult describes a format conversion.
type ConvertResult struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Direction string `json:"direction"` // "import" (image to P3) or "export" (P3 to image)
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// handlePPMConvert converts between P3 and ordinary image formats. A .ppm
// output imports path into P3; any other output exports the P3 at path.
func (s *Server) handlePPMConvert(args json.RawMessage) (interface{}, error) {
	var a ppmConvertArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("%w: output is required", errInvalidArguments)
	}

	if isPPM(a.Output) {
		buf, err := imaging.Import(a.Path)
		if err != nil {
			return nil, err
		}
		if err := ppm.Save(a.Output, buf); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Output)
		return &ConvertResult{Input: a.Path, Output: a.Output, Direction: "import", Width: buf.Width, Height: buf.Height}, nil
	}

	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if err := imaging.Export(buf, a.Output, a.Scale); err != nil {
		return nil, err
	}
	return &ConvertResult{Input: a.Path, Output: a.Output, Direction: "export", Width: buf.Width, Height: buf.Height}, nil
}

func isPPM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ppm")
}

// === Batch Handler ===

type ppmProcessAllArgs struct {
	Path      string `json:"path"`
	OutputDir string `json:"output_dir"`
	Angle     *int   `json:"angle,omitempty"`
	Threshold *int   `json:"threshold,omitempty"`
	Radius    *int   `json:"radius,omitempty"`
}

func (a *ppmProcessAllArgs) inputPath() string { return a.Path }

func (s *Server) handlePPMProcessAll(args json.RawMessage) (interface{}, error) {
	var a ppmProcessAllArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		a.OutputDir = filepath.Dir(a.Path)
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	report, err := pipeline.Process(context.Background(), src, pipeline.Options{
		Input:     a.Path,
		OutputDir: a.OutputDir,
		Angle:     intOr(a.Angle, 90),
		Threshold: intOr(a.Threshold, pixel.DefaultThreshold),
		Radius:    intOr(a.Radius, pixel.DefaultBlurRadius),
		Logger:    &s.logger,
	})
	if err != nil {
		return nil, err
	}
	report.Input = a.Path
	for _, out := range report.Outputs {
		s.cache.Evict(out.Path)
	}
	return report, nil
}
