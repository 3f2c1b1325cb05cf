package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/pnm-tools-mcp/internal/imaging"
	"github.com/ironsheep/pnm-tools-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pnm_info", "pnm_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

var errMissingPath = errors.New("path is required")
var errMissingOutput = errors.New("output is required")

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
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.log.Info("tool call: %s", params.Name)
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//  3. Calls the imaging or ocr function, which reads through the cache
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// File Information
	case "pnm_info":
		return s.handleInfo(args)

	// Raster Creation and Conversion
	case "pnm_create_empty":
		return s.handleCreateEmpty(args)
	case "pnm_convert_binary":
		return s.handleConvertBinary(args)
	case "pnm_to_gray":
		return s.handleToGray(args)
	case "pnm_ppm_to_pgm":
		return s.handlePPMToPGM(args)
	case "pnm_extract_channel":
		return s.handleExtractChannel(args)
	case "pnm_flip":
		return s.handleFlip(args)

	// Color Operations
	case "pnm_sample_color":
		return s.handleSampleColor(args)
	case "pnm_sample_colors_multi":
		return s.handleSampleColorsMulti(args)
	case "pnm_dominant_colors":
		return s.handleDominantColors(args)

	// Region Operations
	case "pnm_crop":
		return s.handleCrop(args)
	case "pnm_crop_quadrant":
		return s.handleCropQuadrant(args)

	// Analysis
	case "pnm_edge_detect":
		return s.handleEdgeDetect(args)

	// Interchange
	case "pnm_export":
		return s.handleExport(args)
	case "pnm_import":
		return s.handleImport(args)

	// OCR Operations
	case "pnm_ocr":
		return s.handleOCR(args)
	case "pnm_detect_text_regions":
		return s.handleDetectTextRegions(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals args into v. Missing arguments decode as the zero
// value so handlers can apply defaults.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// ioArgs carries the input and output paths shared by the tools that
// write a file.
type ioArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

func (a ioArgs) validate() error {
	if a.Path == "" {
		return errMissingPath
	}
	if a.Output == "" {
		return errMissingOutput
	}
	return nil
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// === File Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	return imaging.LoadImageInfo(a.Path)
}

// === Raster Creation and Conversion Handlers ===

type createEmptyArgs struct {
	Kind   string `json:"kind"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Output string `json:"output"`
}

func (s *Server) handleCreateEmpty(args json.RawMessage) (interface{}, error) {
	var a createEmptyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errMissingOutput
	}
	return imaging.CreateEmpty(s.cache, a.Kind, a.Width, a.Height, a.Output)
}

func (s *Server) handleConvertBinary(args json.RawMessage) (interface{}, error) {
	var a ioArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.ConvertBinary(s.cache, a.Path, a.Output)
}

func (s *Server) handleToGray(args json.RawMessage) (interface{}, error) {
	var a ioArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.ToGray(s.cache, a.Path, a.Output)
}

type ppmToPGMArgs struct {
	ioArgs
	Method string `json:"method"`
}

func (s *Server) handlePPMToPGM(args json.RawMessage) (interface{}, error) {
	var a ppmToPGMArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = imaging.GrayMethodChannel
	}
	return imaging.ColorToGray(s.cache, a.Path, a.Output, a.Method)
}

type extractChannelArgs struct {
	ioArgs
	Channel int `json:"channel"`
}

func (s *Server) handleExtractChannel(args json.RawMessage) (interface{}, error) {
	var a extractChannelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.ExtractChannel(s.cache, a.Path, a.Output, a.Channel)
}

type flipArgs struct {
	ioArgs
	Direction string `json:"direction"`
}

func (s *Server) handleFlip(args json.RawMessage) (interface{}, error) {
	var a flipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.Flip(s.cache, a.Path, a.Output, a.Direction)
}

// === Color Operation Handlers ===

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type sampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a sampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type dominantColorsArgs struct {
	Path   string      `json:"path"`
	Count  int         `json:"count"`
	Region *regionArgs `json:"region,omitempty"`
}

func (s *Server) handleDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		region = &imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return imaging.DominantColors(img, a.Count, region)
}

// === Region Operation Handlers ===

type cropArgs struct {
	ioArgs
	regionArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return imaging.Crop(s.cache, a.Path, a.Output, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type cropQuadrantArgs struct {
	ioArgs
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a cropQuadrantArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return imaging.CropQuadrant(s.cache, a.Path, a.Output, a.Region, a.Scale)
}

// === Analysis Handlers ===

type edgeDetectArgs struct {
	ioArgs
	Radius    float64 `json:"radius"`
	Threshold int     `json:"threshold"`
}

func (s *Server) handleEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a edgeDetectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(s.cache, a.Path, a.Output, a.Radius, a.Threshold)
}

// === Interchange Handlers ===

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a ioArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.Export(s.cache, a.Path, a.Output)
}

type importArgs struct {
	ioArgs
	Gray bool `json:"gray"`
}

func (s *Server) handleImport(args json.RawMessage) (interface{}, error) {
	var a importArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.Import(s.cache, a.Path, a.Output, a.Gray)
}

// === OCR Operation Handlers ===

type ocrArgs struct {
	Path     string      `json:"path"`
	Region   *regionArgs `json:"region,omitempty"`
	Language string      `json:"language"`
}

func (s *Server) handleOCR(args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.ocrLanguage
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region != nil {
		r := a.Region
		return ocr.ExtractTextFromRegion(img, r.X1, r.Y1, r.X2, r.Y2, a.Language)
	}
	return ocr.ExtractText(img, a.Language)
}

type detectTextRegionsArgs struct {
	Path          string  `json:"path"`
	MinConfidence float64 `json:"min_confidence"`
}

func (s *Server) handleDetectTextRegions(args json.RawMessage) (interface{}, error) {
	var a detectTextRegionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MinConfidence == 0 {
		a.MinConfidence = 0.5
	}
	img, err := s.cache.LoadRaster(a.Path)
	if err != nil {
		return nil, err
	}
	return ocr.DetectTextRegions(img, a.MinConfidence)
}
