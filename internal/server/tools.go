package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func schema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        values,
		"description": description,
	}
}

func withDefault(p map[string]interface{}, v interface{}) map[string]interface{} {
	p["default"] = v
	return p
}

func inputPath() map[string]interface{} {
	return prop("string", "Absolute path to the input PGM or PPM file")
}

func outputPath() map[string]interface{} {
	return prop("string", "Absolute path of the file to write. Existing files are replaced.")
}

func regionProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": prop("integer", "Left edge (inclusive)"),
			"y1": prop("integer", "Top edge (inclusive)"),
			"x2": prop("integer", "Right edge (exclusive)"),
			"y2": prop("integer", "Bottom edge (exclusive)"),
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// File Information
		{
			Name:        "pnm_info",
			Description: "Read the header of an image file. For PGM/PPM reports magic number (P2, P3, P5, P6), text or binary encoding, width, height, max value and channel count without reading the pixel data.",
			InputSchema: schema(map[string]interface{}{
				"path": prop("string", "Absolute path to the image file"),
			}, "path"),
		},

		// Raster Creation and Conversion
		{
			Name:        "pnm_create_empty",
			Description: "Create a zero-filled (black) PGM or PPM with max value 255.",
			InputSchema: schema(map[string]interface{}{
				"kind":   enumProp("Raster family to create", "pgm", "ppm"),
				"width":  prop("integer", "Width in pixels (> 0)"),
				"height": prop("integer", "Height in pixels (> 0)"),
				"output": outputPath(),
			}, "kind", "width", "height", "output"),
		},
		{
			Name:        "pnm_convert_binary",
			Description: "Re-save a text (P2/P3) or binary (P5/P6) PGM or PPM in binary form. Comments are dropped; samples and max value are kept.",
			InputSchema: schema(map[string]interface{}{
				"path":   inputPath(),
				"output": outputPath(),
			}, "path", "output"),
		},
		{
			Name:        "pnm_to_gray",
			Description: "Replace every PPM pixel with ((R+G+B)/3) mod 255 on all three channels and save as PPM. Pure white becomes black because of the modulo.",
			InputSchema: schema(map[string]interface{}{
				"path":   prop("string", "Absolute path to the input PPM file"),
				"output": outputPath(),
			}, "path", "output"),
		},
		{
			Name:        "pnm_ppm_to_pgm",
			Description: "Convert a PPM to a PGM. Method 'channel' applies the modulo gray conversion and keeps channel 0; method 'mean' stores the plain integer mean (R+G+B)/3.",
			InputSchema: schema(map[string]interface{}{
				"path":   prop("string", "Absolute path to the input PPM file"),
				"output": outputPath(),
				"method": withDefault(enumProp("Gray conversion method", "channel", "mean"), "channel"),
			}, "path", "output"),
		},
		{
			Name:        "pnm_extract_channel",
			Description: "Write one channel of a PPM (0 = red, 1 = green, 2 = blue) as a PGM with the same max value.",
			InputSchema: schema(map[string]interface{}{
				"path":    prop("string", "Absolute path to the input PPM file"),
				"output":  outputPath(),
				"channel": prop("integer", "Channel index: 0, 1 or 2"),
			}, "path", "output", "channel"),
		},
		{
			Name:        "pnm_flip",
			Description: "Mirror a PGM or PPM horizontally (left-right) or vertically (top-bottom).",
			InputSchema: schema(map[string]interface{}{
				"path":      inputPath(),
				"output":    outputPath(),
				"direction": enumProp("Flip direction", "horizontal", "vertical"),
			}, "path", "output", "direction"),
		},

		// Color Operations
		{
			Name:        "pnm_sample_color",
			Description: "Get the color at a pixel: hex, RGB scaled to 0-255, raw stored samples and HSL.",
			InputSchema: schema(map[string]interface{}{
				"path": inputPath(),
				"x":    prop("integer", "X coordinate (0-based, from left)"),
				"y":    prop("integer", "Y coordinate (0-based, from top)"),
			}, "path", "x", "y"),
		},
		{
			Name:        "pnm_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call.",
			InputSchema: schema(map[string]interface{}{
				"path": inputPath(),
				"points": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     prop("integer", "X coordinate"),
							"y":     prop("integer", "Y coordinate"),
							"label": prop("string", "Optional label for this point"),
						},
						"required": []string{"x", "y"},
					},
					"description": "Points to sample",
				},
			}, "path", "points"),
		},
		{
			Name:        "pnm_dominant_colors",
			Description: "Extract the most common colors, quantized to steps of 16, optionally within a region.",
			InputSchema: schema(map[string]interface{}{
				"path":   inputPath(),
				"count":  withDefault(prop("integer", "Number of colors to return"), 5),
				"region": regionProp("Optional region to analyze"),
			}, "path"),
		},

		// Region Operations
		{
			Name:        "pnm_crop",
			Description: "Crop a rectangular region and save it as a PGM or PPM of the same family and max value, optionally scaled with a Lanczos filter.",
			InputSchema: schema(map[string]interface{}{
				"path":   inputPath(),
				"output": outputPath(),
				"x1":     prop("integer", "Left edge X coordinate (0-based)"),
				"y1":     prop("integer", "Top edge Y coordinate (0-based)"),
				"x2":     prop("integer", "Right edge X coordinate (exclusive)"),
				"y2":     prop("integer", "Bottom edge Y coordinate (exclusive)"),
				"scale":  withDefault(prop("number", "Optional scale factor (e.g., 2.0 to double size)"), 1.0),
			}, "path", "output", "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "pnm_crop_quadrant",
			Description: "Crop a named region (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center) and save it.",
			InputSchema: schema(map[string]interface{}{
				"path":   inputPath(),
				"output": outputPath(),
				"region": enumProp("Named region to extract",
					"top-left", "top-right", "bottom-left", "bottom-right",
					"top-half", "bottom-half", "left-half", "right-half", "center"),
				"scale": withDefault(prop("number", "Optional scale factor"), 1.0),
			}, "path", "output", "region"),
		},

		// Analysis
		{
			Name:        "pnm_edge_detect",
			Description: "Run edge detection and save the edge map as a binary PGM (white = edge).",
			InputSchema: schema(map[string]interface{}{
				"path":      inputPath(),
				"output":    outputPath(),
				"radius":    withDefault(prop("number", "Edge kernel radius"), 1.0),
				"threshold": withDefault(prop("integer", "0 keeps edge magnitudes; 1-255 binarizes the output"), 0),
			}, "path", "output"),
		},

		// Interchange
		{
			Name:        "pnm_export",
			Description: "Write a PGM or PPM as PNG, JPEG, GIF, TIFF or BMP. The format is chosen from the output extension.",
			InputSchema: schema(map[string]interface{}{
				"path":   inputPath(),
				"output": prop("string", "Absolute output path ending in .png, .jpg, .jpeg, .gif, .tif, .tiff or .bmp"),
			}, "path", "output"),
		},
		{
			Name:        "pnm_import",
			Description: "Read a PNG, JPEG, GIF or PNM image and save it as a binary PGM (gray) or PPM.",
			InputSchema: schema(map[string]interface{}{
				"path":   prop("string", "Absolute path to the source image"),
				"output": outputPath(),
				"gray":   withDefault(prop("boolean", "Write a PGM instead of a PPM"), false),
			}, "path", "output"),
		},

		// OCR Operations
		{
			Name:        "pnm_ocr",
			Description: "Extract text with Tesseract OCR from a whole PGM/PPM or from a region. Returns full text and word bounding boxes in image coordinates.",
			InputSchema: schema(map[string]interface{}{
				"path":     inputPath(),
				"region":   regionProp("Optional region to read"),
				"language": prop("string", "Tesseract language code (e.g. eng, eng+deu). Defaults to the server's configured language."),
			}, "path"),
		},
		{
			Name:        "pnm_detect_text_regions",
			Description: "Find block-level text regions without returning the text.",
			InputSchema: schema(map[string]interface{}{
				"path":           inputPath(),
				"min_confidence": withDefault(prop("number", "Minimum confidence (0.0-1.0)"), 0.5),
			}, "path"),
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
