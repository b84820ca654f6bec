// Package server implements the MCP (Model Context Protocol) server for the
// PPM tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the P3 codec and
// pixel transformations through the MCP protocol, so an MCP client can
// inspect, transform, preview and convert PPM files.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - ppm_load: Header metadata and grayscale check
//   - ppm_sample_color: Color at one pixel
//   - ppm_sample_colors_multi: Colors at several labeled pixels
//
// Transformations (each reads path and writes output as P3):
//   - ppm_invert, ppm_grayscale, ppm_black_white
//   - ppm_rotate, ppm_equalize, ppm_box_blur
//
// Rendering and conversion:
//   - ppm_preview: Base64 PNG of the image or a region
//   - ppm_convert: P3 to PNG/JPEG/BMP and back
//
// Batch:
//   - ppm_process_all: All six transformations into output_*.ppm
//
// # Buffer Caching
//
// Decoded buffers are cached by path and reused across tool calls. A tool
// that writes a file evicts that path, so the next read decodes the new
// contents.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (bad arguments) or
//     -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
// The server is started by the ppm-tools binary's serve command:
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
