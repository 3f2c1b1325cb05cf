package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// RasterResult describes a PGM or PPM file written by one of the raster
// operations.
type RasterResult struct {
	Path     string `json:"path"`
	Format   string `json:"format"` // "pgm" or "ppm"
	Magic    string `json:"magic"`  // always the binary magic
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxValue int    `json:"max_value"`
}

// saveRaster writes img to out, drops any stale cache entry for out and
// describes the written file.
func saveRaster(cache *ImageCache, img pnm.Image, out string) (*RasterResult, error) {
	if err := img.Save(out); err != nil {
		return nil, err
	}
	cache.Evict(out)

	h := img.Header()
	format := "ppm"
	if h.Format.Gray() {
		format = "pgm"
	}
	return &RasterResult{
		Path:     out,
		Format:   format,
		Magic:    h.Magic,
		Width:    h.Width,
		Height:   h.Height,
		MaxValue: h.MaxValue,
	}, nil
}

// CreateEmpty writes a zero-filled raster with max value 255.
//
// Parameters:
//   - kind: "pgm" for a gray image, "ppm" for a color image.
func CreateEmpty(cache *ImageCache, kind string, width, height int, out string) (*RasterResult, error) {
	var (
		img pnm.Image
		err error
	)
	switch kind {
	case "pgm":
		img, err = pnm.NewGray(width, height)
	case "ppm":
		img, err = pnm.NewColor(width, height)
	default:
		return nil, fmt.Errorf("unknown raster kind %q (want pgm or ppm)", kind)
	}
	if err != nil {
		return nil, err
	}
	return saveRaster(cache, img, out)
}

// ConvertBinary re-saves a PGM or PPM file in its binary encoding. Text
// sources ("P2", "P3") become "P5", "P6"; comments are dropped.
func ConvertBinary(cache *ImageCache, in, out string) (*RasterResult, error) {
	img, err := cache.LoadRaster(in)
	if err != nil {
		return nil, err
	}
	return saveRaster(cache, img, out)
}

// ToGray applies the in-place PPM gray conversion ((R+G+B)/3 % 255 on
// every channel) to a copy of in and writes the result as a PPM.
func ToGray(cache *ImageCache, in, out string) (*RasterResult, error) {
	src, err := cache.LoadColor(in)
	if err != nil {
		return nil, err
	}
	img := src.Clone().(*pnm.ColorImage)
	img.ToGray()
	return saveRaster(cache, img, out)
}

// Gray conversion methods for ColorToGray.
const (
	GrayMethodChannel = "channel"
	GrayMethodMean    = "mean"
)

// ColorToGray converts a PPM file to a PGM file.
//
// # Methods
//
//   - "channel": ToGray then take the red channel. White pixels map to 0
//     because of the modulo in ToGray.
//   - "mean": plain integer mean (R+G+B)/3 per pixel.
func ColorToGray(cache *ImageCache, in, out, method string) (*RasterResult, error) {
	src, err := cache.LoadColor(in)
	if err != nil {
		return nil, err
	}

	var gray *pnm.GrayImage
	switch method {
	case GrayMethodChannel:
		gray = src.GrayByChannel()
	case GrayMethodMean:
		gray = src.GrayByMean()
	default:
		return nil, fmt.Errorf("unknown gray method %q (want %s or %s)", method, GrayMethodChannel, GrayMethodMean)
	}
	return saveRaster(cache, gray, out)
}

// ExtractChannel writes one channel of a PPM file as a PGM with the
// same dimensions and max value.
func ExtractChannel(cache *ImageCache, in, out string, channel int) (*RasterResult, error) {
	src, err := cache.LoadColor(in)
	if err != nil {
		return nil, err
	}
	samples, err := src.Channel(channel)
	if err != nil {
		return nil, err
	}
	gray, err := pnm.NewGrayFromBuffer(samples, src.Width, src.Height, src.MaxValue)
	if err != nil {
		return nil, err
	}
	return saveRaster(cache, gray, out)
}

// Flip directions for Flip.
const (
	FlipHorizontal = "horizontal"
	FlipVertical   = "vertical"
)

// Flip mirrors a copy of a PGM or PPM file and writes it to out.
func Flip(cache *ImageCache, in, out, direction string) (*RasterResult, error) {
	src, err := cache.LoadRaster(in)
	if err != nil {
		return nil, err
	}

	img := src.Clone()
	switch direction {
	case FlipHorizontal:
		img.FlipHorizontal()
	case FlipVertical:
		img.FlipVertical()
	default:
		return nil, fmt.Errorf("unknown flip direction %q (want %s or %s)", direction, FlipHorizontal, FlipVertical)
	}
	return saveRaster(cache, img, out)
}

// rawView exposes the stored samples of r as a standard image without
// scaling by max value, so generic image code operates on the samples
// exactly as stored.
func rawView(r pnm.Image) image.Image {
	switch m := r.(type) {
	case *pnm.GrayImage:
		return &image.Gray{
			Pix:    m.Pix,
			Stride: m.Width,
			Rect:   image.Rect(0, 0, m.Width, m.Height),
		}
	case *pnm.ColorImage:
		view := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
		for i, j := 0, 0; i+2 < len(m.Pix); i, j = i+3, j+4 {
			view.Pix[j] = m.Pix[i]
			view.Pix[j+1] = m.Pix[i+1]
			view.Pix[j+2] = m.Pix[i+2]
			view.Pix[j+3] = 0xff
		}
		return view
	}
	return r
}

// fromRawView converts a standard image holding raw samples back into a
// raster of the same family and max value as like.
func fromRawView(img image.Image, like pnm.Image) (pnm.Image, error) {
	maxValue := like.Header().MaxValue
	if _, ok := like.(*pnm.GrayImage); ok {
		g, err := pnm.GrayFromImage(img)
		if err != nil {
			return nil, err
		}
		g.MaxValue = maxValue
		return g, nil
	}
	c, err := pnm.ColorFromImage(img)
	if err != nil {
		return nil, err
	}
	c.MaxValue = maxValue
	return c, nil
}
