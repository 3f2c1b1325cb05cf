package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts a rectangular region from a PGM or PPM file and writes
// it to out in the same family (PGM stays PGM, PPM stays PPM) with the
// source max value.
//
// Parameters:
//   - x1, y1: top-left corner (inclusive).
//   - x2, y2: bottom-right corner (exclusive).
//   - scale: resize factor applied after cropping with a Lanczos filter;
//     1.0 (or any value <= 0) keeps the cropped size.
//
// Samples are cropped and resampled as stored, without scaling by max
// value.
func Crop(cache *ImageCache, in, out string, x1, y1, x2, y2 int, scale float64) (*RasterResult, error) {
	src, err := cache.LoadRaster(in)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(rawView(src), image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f reduces the crop below 1x1", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	img, err := fromRawView(cropped, src)
	if err != nil {
		return nil, err
	}
	return saveRaster(cache, img, out)
}

// CropQuadrant crops a named region of a PGM or PPM file.
//
// Regions: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half, center (middle 50%).
func CropQuadrant(cache *ImageCache, in, out, region string, scale float64) (*RasterResult, error) {
	src, err := cache.LoadRaster(in)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("unknown region: %s", region)
	}

	return Crop(cache, in, out, x1, y1, x2, y2, scale)
}
