// Package server implements the MCP (Model Context Protocol) server for
// PGM and PPM raster tools.
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
// File Information:
//   - pnm_info: Header fields of a PGM/PPM (or size of another image)
//
// Raster Creation and Conversion:
//   - pnm_create_empty: Zero-filled PGM or PPM
//   - pnm_convert_binary: Re-save a text or binary file as binary
//   - pnm_to_gray: Modulo gray conversion of a PPM, kept as PPM
//   - pnm_ppm_to_pgm: PPM to PGM by channel or mean
//   - pnm_extract_channel: One PPM channel as a PGM
//   - pnm_flip: Horizontal or vertical mirror
//
// Color Operations:
//   - pnm_sample_color, pnm_sample_colors_multi, pnm_dominant_colors
//
// Region Operations:
//   - pnm_crop, pnm_crop_quadrant
//
// Analysis and Interchange:
//   - pnm_edge_detect: Edge map as a PGM
//   - pnm_export: PGM/PPM to PNG, JPEG, GIF, TIFF or BMP
//   - pnm_import: PNG, JPEG or GIF to PGM/PPM
//
// OCR Operations:
//   - pnm_ocr: Text and word boxes, whole image or region
//   - pnm_detect_text_regions: Block-level text boxes
//
// # Image Caching
//
// Decoded rasters are cached by path and reused across tool calls. Every
// tool that writes a file evicts that path, so a later read sees the new
// contents. The cache can be disabled with -cache=false.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//     (-32700 parse error, -32601 unknown method, -32602 bad params)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.Parse(os.Args[1:], os.Stdout)
//	...
//	log := logging.NewFromString(cfg.LogLevel, os.Stderr)
//	srv := server.New(server.OptionsFromConfig(cfg, log))
//	if err := srv.Run(); err != nil {
//	    log.Error("%v", err)
//	}
package server
