package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// For PNM rasters the values are samples scaled from [0, MaxValue] to
// [0, 255]. Raw is the unscaled sample triple as stored in the file; for
// gray images all three entries repeat the single sample.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // Scaled RGB components
	Raw RGBColor `json:"raw"` // Stored samples
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
//
// # Color Conversion
//
// Hex and HSL are computed with go-colorful from the 8-bit scaled color.
// Raw is read directly from the sample buffer when img is a PNM raster;
// for other images it equals RGB.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	rgb := RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}

	return &ColorResult{
		Hex: toHex(rgb),
		RGB: rgb,
		Raw: rawSample(img, x, y, rgb),
		HSL: rgbToHSL(rgb.R, rgb.G, rgb.B),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a single call.
//
// On error no partial results are returned.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// Region represents a rectangular region within an image.
//
// (X1, Y1) is inclusive and (X2, Y2) is exclusive.
type Region struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors in an image,
// most common first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the N most common colors from an image or region.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Maximum number of colors to return.
//   - region: Optional rectangular region to analyze. If nil, the entire image
//     is analyzed. The region is clipped to the image bounds.
//
// # Color Quantization
//
// Components are quantized as (v / 16) * 16 so near colors group together.
// Ties in frequency are broken by hex string so results are stable.
func DominantColors(img image.Image, count int, region *Region) (*DominantColorsResult, error) {
	bounds := img.Bounds()
	if region != nil {
		bounds = image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(bounds)
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("region %v does not overlap the image", bounds)
	}

	colorCounts := make(map[RGBColor]int)
	totalPixels := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := RGBColor{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			colorCounts[key]++
			totalPixels++
		}
	}

	colors := make([]ColorFrequency, 0, len(colorCounts))
	for rgb, cnt := range colorCounts {
		colors = append(colors, ColorFrequency{
			Hex:        toHex(rgb),
			Percentage: float64(cnt) / float64(totalPixels) * 100,
			RGB:        rgb,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}

// rawSample returns the stored samples at (x, y) for PNM rasters and
// fallback for any other image.
func rawSample(img image.Image, x, y int, fallback RGBColor) RGBColor {
	switch m := img.(type) {
	case *pnm.GrayImage:
		v := m.Pix[y*m.Width+x]
		return RGBColor{R: v, G: v, B: v}
	case *pnm.ColorImage:
		i := 3 * (y*m.Width + x)
		return RGBColor{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
	}
	return fallback
}

func toColorful(rgb RGBColor) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

func toHex(rgb RGBColor) string {
	return strings.ToUpper(toColorful(rgb).Hex())
}

// rgbToHSL converts 8-bit RGB values to HSL, rounded to whole degrees
// and percentages.
func rgbToHSL(r, g, b uint8) HSLColor {
	h, s, l := toColorful(RGBColor{R: r, G: g, B: b}).Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
