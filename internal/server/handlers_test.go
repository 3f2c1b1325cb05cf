package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// writeGrayFile saves a PGM filled with a horizontal ramp and returns its path.
func writeGrayFile(t *testing.T, width, height int) string {
	t.Helper()

	buf := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf[y*width+x] = uint8(x * 255 / width)
		}
	}
	img, err := pnm.NewGrayFromBuffer(buf, width, height, 255)
	if err != nil {
		t.Fatalf("failed to build gray image: %v", err)
	}

	path := filepath.Join(t.TempDir(), "gray.pgm")
	if err := img.Save(path); err != nil {
		t.Fatalf("failed to save gray image: %v", err)
	}
	return path
}

// writeColorFile saves a PPM filled with one color and returns its path.
func writeColorFile(t *testing.T, width, height int, r, g, b uint8) string {
	t.Helper()

	buf := make([]uint8, width*height*3)
	for i := 0; i < len(buf); i += 3 {
		buf[i], buf[i+1], buf[i+2] = r, g, b
	}
	img, err := pnm.NewColorFromBuffer(buf, width, height, 255)
	if err != nil {
		t.Fatalf("failed to build color image: %v", err)
	}

	path := filepath.Join(t.TempDir(), "color.ppm")
	if err := img.Save(path); err != nil {
		t.Fatalf("failed to save color image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult decodes the JSON text content of a successful tools/call
// response into v.
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result should be a map, got %T", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode tool result %q: %v", text, err)
	}
}

type rasterJSON struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Magic    string `json:"magic"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxValue int    `json:"max_value"`
}

func TestHandleToolsCall_Info(t *testing.T) {
	s := New(Options{})
	path := writeGrayFile(t, 40, 30)

	var info struct {
		Width    int    `json:"width"`
		Height   int    `json:"height"`
		Format   string `json:"format"`
		Magic    string `json:"magic"`
		Encoding string `json:"encoding"`
		MaxValue int    `json:"max_value"`
		Channels int    `json:"channels"`
	}
	toolResult(t, callTool(t, s, "pnm_info", map[string]interface{}{"path": path}), &info)

	if info.Width != 40 || info.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", info.Width, info.Height)
	}
	if info.Format != "pgm" || info.Magic != "P5" || info.Encoding != "binary" {
		t.Errorf("format: got %s %s %s", info.Format, info.Magic, info.Encoding)
	}
	if info.MaxValue != 255 || info.Channels != 1 {
		t.Errorf("max value/channels: got %d/%d", info.MaxValue, info.Channels)
	}
}

func TestHandleToolsCall_Info_TextPPM(t *testing.T) {
	s := New(Options{})
	path := filepath.Join(t.TempDir(), "text.ppm")
	data := "P3\n# comment\n2 1\n15\n15 0 0  0 15 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	var info struct {
		Magic    string `json:"magic"`
		Encoding string `json:"encoding"`
		MaxValue int    `json:"max_value"`
		Channels int    `json:"channels"`
	}
	toolResult(t, callTool(t, s, "pnm_info", map[string]interface{}{"path": path}), &info)

	if info.Magic != "P3" || info.Encoding != "text" || info.MaxValue != 15 || info.Channels != 3 {
		t.Errorf("info: got %+v", info)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(Options{})

	tools := []string{"pnm_info", "pnm_sample_color", "pnm_dominant_colors", "pnm_ocr", "pnm_detect_text_regions"}
	for _, name := range tools {
		t.Run(name, func(t *testing.T) {
			resp := callTool(t, s, name, map[string]interface{}{"path": "/nonexistent/image.pgm"})
			if resp.Error == nil || resp.Error.Code != -32000 {
				t.Errorf("expected -32000, got %+v", resp.Error)
			}
		})
	}
}

func TestHandleToolsCall_MissingPaths(t *testing.T) {
	s := New(Options{})
	in := writeColorFile(t, 4, 4, 10, 20, 30)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"pnm_info", nil, "path is required"},
		{"pnm_create_empty", map[string]interface{}{"kind": "pgm", "width": 2, "height": 2}, "output is required"},
		{"pnm_convert_binary", map[string]interface{}{"output": "/tmp/x.pgm"}, "path is required"},
		{"pnm_to_gray", map[string]interface{}{"path": in}, "output is required"},
		{"pnm_flip", map[string]interface{}{"path": in, "direction": "vertical"}, "output is required"},
		{"pnm_crop", map[string]interface{}{"path": in, "x2": 1, "y2": 1}, "output is required"},
		{"pnm_export", map[string]interface{}{"path": in}, "output is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, tt.name, tt.args)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("code: got %d, want -32000", resp.Error.Code)
			}
			if data, _ := resp.Error.Data.(string); data != tt.want {
				t.Errorf("data: got %q, want %q", data, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New(Options{})
	resp := callTool(t, s, "pnm_resize", map[string]interface{}{"path": "/x"})

	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000, got %+v", resp.Error)
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "unknown tool") {
		t.Errorf("data should mention unknown tool: %q", data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(Options{})
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name": 42}`),
	})

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidArguments(t *testing.T) {
	s := New(Options{})
	resp := callTool(t, s, "pnm_flip", map[string]interface{}{"path": 7})

	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000, got %+v", resp.Error)
	}
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "invalid arguments") {
		t.Errorf("data: got %q", data)
	}
}

func TestHandleToolsCall_CreateEmpty(t *testing.T) {
	s := New(Options{})
	out := filepath.Join(t.TempDir(), "empty.ppm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_create_empty", map[string]interface{}{
		"kind": "ppm", "width": 5, "height": 3, "output": out,
	}), &res)

	if res.Format != "ppm" || res.Magic != "P6" || res.Width != 5 || res.Height != 3 || res.MaxValue != 255 {
		t.Errorf("result: got %+v", res)
	}

	img, err := pnm.LoadColor(out)
	if err != nil {
		t.Fatalf("LoadColor failed: %v", err)
	}
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("sample %d: got %d, want 0", i, v)
		}
	}
}

func TestHandleToolsCall_CreateEmpty_Invalid(t *testing.T) {
	s := New(Options{})
	out := filepath.Join(t.TempDir(), "bad.pgm")

	tests := []map[string]interface{}{
		{"kind": "pbm", "width": 2, "height": 2, "output": out},
		{"kind": "pgm", "width": 0, "height": 2, "output": out},
		{"kind": "pgm", "width": 2, "height": -1, "output": out},
	}
	for _, args := range tests {
		if resp := callTool(t, s, "pnm_create_empty", args); resp.Error == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestHandleToolsCall_ConvertBinary(t *testing.T) {
	s := New(Options{})
	dir := t.TempDir()
	in := filepath.Join(dir, "text.pgm")
	if err := os.WriteFile(in, []byte("P2\n3 1\n100\n0 50 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "binary.pgm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_convert_binary", map[string]interface{}{"path": in, "output": out}), &res)

	if res.Magic != "P5" || res.MaxValue != 100 {
		t.Errorf("result: got %+v", res)
	}
	img, err := pnm.LoadGray(out)
	if err != nil {
		t.Fatalf("LoadGray failed: %v", err)
	}
	if string(img.Pix) != string([]uint8{0, 50, 100}) {
		t.Errorf("samples: got %v", img.Pix)
	}
}

func TestHandleToolsCall_ToGray(t *testing.T) {
	s := New(Options{})
	in := writeColorFile(t, 2, 2, 30, 60, 90)
	out := filepath.Join(t.TempDir(), "gray.ppm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_to_gray", map[string]interface{}{"path": in, "output": out}), &res)
	if res.Format != "ppm" {
		t.Errorf("format: got %s, want ppm", res.Format)
	}

	img, err := pnm.LoadColor(out)
	if err != nil {
		t.Fatalf("LoadColor failed: %v", err)
	}
	for i, v := range img.Pix {
		if v != 60 {
			t.Fatalf("sample %d: got %d, want 60", i, v)
		}
	}
}

func TestHandleToolsCall_PPMToPGM(t *testing.T) {
	tests := []struct {
		method string
		want   uint8
	}{
		{"", 0},        // default channel method: (255*3/3) mod 255
		{"channel", 0}, // same as default
		{"mean", 255},
	}

	for _, tt := range tests {
		t.Run("method="+tt.method, func(t *testing.T) {
			s := New(Options{})
			in := writeColorFile(t, 2, 2, 255, 255, 255)
			out := filepath.Join(t.TempDir(), "out.pgm")

			args := map[string]interface{}{"path": in, "output": out}
			if tt.method != "" {
				args["method"] = tt.method
			}
			var res rasterJSON
			toolResult(t, callTool(t, s, "pnm_ppm_to_pgm", args), &res)
			if res.Format != "pgm" {
				t.Errorf("format: got %s, want pgm", res.Format)
			}

			img, err := pnm.LoadGray(out)
			if err != nil {
				t.Fatalf("LoadGray failed: %v", err)
			}
			if img.Pix[0] != tt.want {
				t.Errorf("sample: got %d, want %d", img.Pix[0], tt.want)
			}
		})
	}
}

func TestHandleToolsCall_PPMToPGM_RejectsGray(t *testing.T) {
	s := New(Options{})
	in := writeGrayFile(t, 4, 4)
	out := filepath.Join(t.TempDir(), "out.pgm")

	if resp := callTool(t, s, "pnm_ppm_to_pgm", map[string]interface{}{"path": in, "output": out}); resp.Error == nil {
		t.Error("expected error for PGM input")
	}
}

func TestHandleToolsCall_ExtractChannel(t *testing.T) {
	s := New(Options{})
	in := writeColorFile(t, 3, 2, 10, 20, 30)

	for channel, want := range []uint8{10, 20, 30} {
		out := filepath.Join(t.TempDir(), "channel.pgm")
		var res rasterJSON
		toolResult(t, callTool(t, s, "pnm_extract_channel", map[string]interface{}{
			"path": in, "output": out, "channel": channel,
		}), &res)

		img, err := pnm.LoadGray(out)
		if err != nil {
			t.Fatalf("LoadGray failed: %v", err)
		}
		if img.Pix[0] != want {
			t.Errorf("channel %d: got %d, want %d", channel, img.Pix[0], want)
		}
	}

	out := filepath.Join(t.TempDir(), "bad.pgm")
	if resp := callTool(t, s, "pnm_extract_channel", map[string]interface{}{"path": in, "output": out, "channel": 3}); resp.Error == nil {
		t.Error("expected error for channel 3")
	}
}

func TestHandleToolsCall_Flip(t *testing.T) {
	s := New(Options{})
	in := writeGrayFile(t, 4, 2)
	out := filepath.Join(t.TempDir(), "flipped.pgm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_flip", map[string]interface{}{
		"path": in, "output": out, "direction": "horizontal",
	}), &res)

	src, _ := pnm.LoadGray(in)
	got, err := pnm.LoadGray(out)
	if err != nil {
		t.Fatalf("LoadGray failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got.Pix[y*4+x] != src.Pix[y*4+3-x] {
				t.Errorf("(%d,%d): got %d, want %d", x, y, got.Pix[y*4+x], src.Pix[y*4+3-x])
			}
		}
	}

	if resp := callTool(t, s, "pnm_flip", map[string]interface{}{"path": in, "output": out, "direction": "diagonal"}); resp.Error == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestHandleToolsCall_OverwriteEvictsCache(t *testing.T) {
	s := New(Options{})
	path := writeColorFile(t, 2, 2, 200, 0, 0)

	var before struct {
		Hex string `json:"hex"`
	}
	toolResult(t, callTool(t, s, "pnm_sample_color", map[string]interface{}{"path": path, "x": 0, "y": 0}), &before)
	if before.Hex != "#C80000" {
		t.Fatalf("hex before: got %s", before.Hex)
	}

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_to_gray", map[string]interface{}{"path": path, "output": path}), &res)

	var after struct {
		Hex string `json:"hex"`
	}
	toolResult(t, callTool(t, s, "pnm_sample_color", map[string]interface{}{"path": path, "x": 0, "y": 0}), &after)
	if after.Hex != "#424242" {
		t.Errorf("hex after overwrite: got %s, want #424242", after.Hex)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New(Options{})
	path := writeColorFile(t, 10, 10, 255, 0, 0)

	var res struct {
		Hex string `json:"hex"`
		RGB struct {
			R, G, B int
		} `json:"rgb"`
		HSL struct {
			H float64 `json:"h"`
			S float64 `json:"s"`
			L float64 `json:"l"`
		} `json:"hsl"`
	}
	toolResult(t, callTool(t, s, "pnm_sample_color", map[string]interface{}{"path": path, "x": 5, "y": 5}), &res)

	if res.Hex != "#FF0000" {
		t.Errorf("hex: got %s, want #FF0000", res.Hex)
	}
	if res.RGB.R != 255 || res.RGB.G != 0 || res.RGB.B != 0 {
		t.Errorf("rgb: got %+v", res.RGB)
	}

	if resp := callTool(t, s, "pnm_sample_color", map[string]interface{}{"path": path, "x": 10, "y": 0}); resp.Error == nil {
		t.Error("expected error for out-of-bounds coordinate")
	}
}

func TestHandleToolsCall_SampleColorsMulti(t *testing.T) {
	s := New(Options{})
	path := writeColorFile(t, 10, 10, 0, 0, 255)

	var res struct {
		Samples []struct {
			Label string `json:"label"`
			Color struct {
				Hex string `json:"hex"`
			} `json:"color"`
		} `json:"samples"`
	}
	toolResult(t, callTool(t, s, "pnm_sample_colors_multi", map[string]interface{}{
		"path": path,
		"points": []map[string]interface{}{
			{"x": 0, "y": 0, "label": "corner"},
			{"x": 9, "y": 9},
		},
	}), &res)

	if len(res.Samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(res.Samples))
	}
	if res.Samples[0].Label != "corner" || res.Samples[0].Color.Hex != "#0000FF" {
		t.Errorf("first sample: got %+v", res.Samples[0])
	}
}

func TestHandleToolsCall_DominantColors(t *testing.T) {
	s := New(Options{})
	path := writeColorFile(t, 8, 8, 0, 255, 0)

	var res struct {
		Colors []struct {
			Hex        string  `json:"hex"`
			Percentage float64 `json:"percentage"`
		} `json:"colors"`
	}
	toolResult(t, callTool(t, s, "pnm_dominant_colors", map[string]interface{}{
		"path":   path,
		"region": map[string]interface{}{"x1": 0, "y1": 0, "x2": 4, "y2": 4},
	}), &res)

	if len(res.Colors) != 1 {
		t.Fatalf("colors: got %d, want 1", len(res.Colors))
	}
	if res.Colors[0].Hex != "#00F000" || res.Colors[0].Percentage != 100 {
		t.Errorf("color: got %+v", res.Colors[0])
	}
}

func TestHandleToolsCall_Crop(t *testing.T) {
	s := New(Options{})
	in := writeGrayFile(t, 20, 10)
	out := filepath.Join(t.TempDir(), "crop.pgm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_crop", map[string]interface{}{
		"path": in, "output": out, "x1": 5, "y1": 2, "x2": 15, "y2": 8,
	}), &res)

	if res.Format != "pgm" || res.Width != 10 || res.Height != 6 {
		t.Errorf("result: got %+v", res)
	}

	src, _ := pnm.LoadGray(in)
	got, err := pnm.LoadGray(out)
	if err != nil {
		t.Fatalf("LoadGray failed: %v", err)
	}
	if got.Pix[0] != src.Pix[2*20+5] {
		t.Errorf("first sample: got %d, want %d", got.Pix[0], src.Pix[2*20+5])
	}
}

func TestHandleToolsCall_Crop_WithScale(t *testing.T) {
	s := New(Options{})
	in := writeColorFile(t, 20, 20, 40, 80, 120)
	out := filepath.Join(t.TempDir(), "crop.ppm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_crop", map[string]interface{}{
		"path": in, "output": out, "x1": 0, "y1": 0, "x2": 10, "y2": 5, "scale": 2.0,
	}), &res)

	if res.Format != "ppm" || res.Width != 20 || res.Height != 10 {
		t.Errorf("result: got %+v", res)
	}
}

func TestHandleToolsCall_Crop_OutOfBounds(t *testing.T) {
	s := New(Options{})
	in := writeGrayFile(t, 10, 10)
	out := filepath.Join(t.TempDir(), "crop.pgm")

	resp := callTool(t, s, "pnm_crop", map[string]interface{}{
		"path": in, "output": out, "x1": 5, "y1": 5, "x2": 11, "y2": 8,
	})
	if resp.Error == nil {
		t.Error("expected error for region outside image")
	}
}

func TestHandleToolsCall_CropQuadrant(t *testing.T) {
	regions := map[string][2]int{
		"top-left":    {10, 5},
		"bottom-half": {20, 5},
		"right-half":  {10, 10},
		"center":      {10, 6},
	}

	s := New(Options{})
	in := writeGrayFile(t, 20, 10)
	for region, want := range regions {
		t.Run(region, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "q.pgm")
			var res rasterJSON
			toolResult(t, callTool(t, s, "pnm_crop_quadrant", map[string]interface{}{
				"path": in, "output": out, "region": region,
			}), &res)
			if res.Width != want[0] || res.Height != want[1] {
				t.Errorf("size: got %dx%d, want %dx%d", res.Width, res.Height, want[0], want[1])
			}
		})
	}
}

func TestHandleToolsCall_EdgeDetect(t *testing.T) {
	s := New(Options{})
	in := writeColorFile(t, 16, 16, 90, 90, 90)
	out := filepath.Join(t.TempDir(), "edges.pgm")

	var res rasterJSON
	toolResult(t, callTool(t, s, "pnm_edge_detect", map[string]interface{}{
		"path": in, "output": out, "threshold": 128,
	}), &res)

	if res.Format != "pgm" || res.Width != 16 || res.Height != 16 {
		t.Errorf("result: got %+v", res)
	}

	if resp := callTool(t, s, "pnm_edge_detect", map[string]interface{}{
		"path": in, "output": out, "radius": -1.0,
	}); resp.Error == nil {
		t.Error("expected error for negative radius")
	}
}

func TestHandleToolsCall_ExportImport(t *testing.T) {
	s := New(Options{})
	dir := t.TempDir()
	in := writeColorFile(t, 6, 4, 255, 128, 0)
	pngPath := filepath.Join(dir, "out.png")

	var exported struct {
		Path   string `json:"path"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	toolResult(t, callTool(t, s, "pnm_export", map[string]interface{}{"path": in, "output": pngPath}), &exported)
	if exported.Width != 6 || exported.Height != 4 {
		t.Errorf("export: got %+v", exported)
	}

	back := filepath.Join(dir, "back.ppm")
	var imported rasterJSON
	toolResult(t, callTool(t, s, "pnm_import", map[string]interface{}{"path": pngPath, "output": back}), &imported)
	if imported.Format != "ppm" || imported.Width != 6 || imported.Height != 4 {
		t.Errorf("import: got %+v", imported)
	}

	img, err := pnm.LoadColor(back)
	if err != nil {
		t.Fatalf("LoadColor failed: %v", err)
	}
	if img.Pix[0] != 255 || img.Pix[1] != 128 || img.Pix[2] != 0 {
		t.Errorf("first pixel: got %v", img.Pix[:3])
	}

	grayOut := filepath.Join(dir, "back.pgm")
	toolResult(t, callTool(t, s, "pnm_import", map[string]interface{}{"path": pngPath, "output": grayOut, "gray": true}), &imported)
	if imported.Format != "pgm" {
		t.Errorf("gray import format: got %s", imported.Format)
	}

	if resp := callTool(t, s, "pnm_export", map[string]interface{}{"path": in, "output": filepath.Join(dir, "out.xyz")}); resp.Error == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestHandleToolsCall_OCR(t *testing.T) {
	s := New(Options{})
	path := writeGrayFile(t, 64, 32)

	resp := callTool(t, s, "pnm_ocr", map[string]interface{}{"path": path})
	if resp.Error != nil {
		data, _ := resp.Error.Data.(string)
		if strings.Contains(strings.ToLower(data), "tesseract") || strings.Contains(strings.ToLower(data), "language") {
			t.Skip("Tesseract not available")
		}
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}

	var res struct {
		FullText string        `json:"full_text"`
		Regions  []interface{} `json:"regions"`
	}
	toolResult(t, resp, &res)
	if res.Regions == nil {
		t.Error("regions should be an empty list, not null")
	}
}

func TestHandleToolsCall_OCRRegion_Invalid(t *testing.T) {
	s := New(Options{})
	path := writeGrayFile(t, 20, 20)

	resp := callTool(t, s, "pnm_ocr", map[string]interface{}{
		"path":   path,
		"region": map[string]interface{}{"x1": 10, "y1": 10, "x2": 5, "y2": 30},
	})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected -32000, got %+v", resp.Error)
	}
}

func TestExecuteTool_AllToolsDispatch(t *testing.T) {
	s := New(Options{})

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
			if err == nil {
				t.Fatal("expected error for empty arguments")
			}
			if strings.Contains(err.Error(), "unknown tool") {
				t.Errorf("tool %s is listed but not dispatched", tool.Name)
			}
		})
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(Options{})
	_, err := s.executeTool("pnm_info", json.RawMessage(`{invalid`))
	if err == nil || !strings.Contains(err.Error(), "invalid arguments") {
		t.Errorf("expected invalid arguments error, got %v", err)
	}
}
