package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the P3 (.ppm) input file",
	}
}

func outputProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path of the P3 file to write; overwritten if it exists",
	}
}

// transformSchema builds the schema shared by the single-output transformation
// tools, adding extra to the path/output pair.
func transformSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path":   pathProperty(),
		"output": outputProperty(),
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"path", "output"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "ppm_load",
			Description: "Load a plain-text PPM (P3) file and return its width, height, max value, file size and whether it is already grayscale.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_sample_color",
			Description: "Get the color of the pixel at column x, row y. Returns the raw channel values plus hex, 8-bit RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Column (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Row (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "ppm_sample_colors_multi",
			Description: "Sample colors at several labeled points in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Transformations
		{
			Name:        "ppm_invert",
			Description: "Write the color negative: every channel c becomes max_value - c.",
			InputSchema: transformSchema(nil),
		},
		{
			Name:        "ppm_grayscale",
			Description: "Write a grayscale copy: every pixel becomes the truncated mean of its three channels.",
			InputSchema: transformSchema(nil),
		},
		{
			Name:        "ppm_black_white",
			Description: "Write a two-level copy: pixels whose channel mean is above the threshold become white, the rest black.",
			InputSchema: transformSchema(map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Threshold on the channel mean. Default 127",
					"default":     127,
				},
			}),
		},
		{
			Name:        "ppm_rotate",
			Description: "Write a rotated copy. 90 is clockwise and 270 counter-clockwise; 90 and 270 swap width and height. Any other angle writes an unchanged copy.",
			InputSchema: transformSchema(map[string]interface{}{
				"angle": map[string]interface{}{
					"type":        "integer",
					"description": "Rotation in degrees: 0, 90, 180 or 270. Default 90",
					"enum":        []int{0, 90, 180, 270},
					"default":     90,
				},
			}),
		},
		{
			Name:        "ppm_equalize",
			Description: "Write a histogram-equalized grayscale copy. The histogram is built from the red channel, so color input should be converted to grayscale first.",
			InputSchema: transformSchema(map[string]interface{}{
				"grayscale_first": map[string]interface{}{
					"type":        "boolean",
					"description": "Convert to grayscale before equalizing. Default false",
					"default":     false,
				},
			}),
		},
		{
			Name:        "ppm_box_blur",
			Description: "Write a box-blurred copy. Each channel becomes the truncated mean of the window of the given radius, clipped at the image borders.",
			InputSchema: transformSchema(map[string]interface{}{
				"radius": map[string]interface{}{
					"type":        "integer",
					"description": "Window radius; 0 copies the input. Default 1",
					"default":     1,
				},
			}),
		},

		// Rendering and conversion
		{
			Name:        "ppm_preview",
			Description: "Render a P3 file, or a region of it, as a base64-encoded PNG so it can be viewed. Scaling keeps pixels sharp.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional crop with exclusive x2/y2",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 8.0 to enlarge a tiny image). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_convert",
			Description: "Convert between P3 and ordinary image formats. An output ending in .ppm imports a PNG, JPEG or BMP file into P3; any other output exports the P3 input using the output extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input file",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the file to write (.ppm, .png, .jpg, .bmp, .gif, .tif)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Export scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "output"},
			},
		},

		// Batch
		{
			Name:        "ppm_process_all",
			Description: "Apply every transformation once and write output_inverted.ppm, output_grayscale.ppm, output_rotated.ppm, output_equalized.ppm, output_bw.ppm and output_blurred.ppm.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the output files. Default: the input's directory",
					},
					"angle": map[string]interface{}{
						"type":        "integer",
						"description": "Rotation for output_rotated.ppm. Default 90",
						"default":     90,
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Threshold for output_bw.ppm. Default 127",
						"default":     127,
					},
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Blur radius for output_blurred.ppm. Default 1",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
