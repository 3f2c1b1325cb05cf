package imaging

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// ExportResult describes a raster written in a common image format.
type ExportResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Export writes a PGM or PPM file as PNG, JPEG, GIF, TIFF or BMP. The
// output format is chosen from the extension of out. Samples are scaled
// from [0, MaxValue] to 8 bits.
func Export(cache *ImageCache, in, out string) (*ExportResult, error) {
	src, err := cache.LoadRaster(in)
	if err != nil {
		return nil, err
	}
	if _, err := imaging.FormatFromFilename(out); err != nil {
		return nil, fmt.Errorf("cannot export to %s: %w", out, err)
	}
	if err := imaging.Save(src, out); err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", out, err)
	}
	cache.Evict(out)

	b := src.Bounds()
	return &ExportResult{Path: out, Width: b.Dx(), Height: b.Dy()}, nil
}

// Import reads any decodable image (PNG, JPEG, GIF or an existing PGM or
// PPM) and writes it as a binary PGM when gray is true, otherwise as a
// binary PPM. EXIF orientation is applied to JPEG sources.
func Import(cache *ImageCache, in, out string, gray bool) (*RasterResult, error) {
	src, err := imaging.Open(in, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", in, err)
	}

	var img pnm.Image
	if gray {
		img, err = pnm.GrayFromImage(src)
	} else {
		img, err = pnm.ColorFromImage(src)
	}
	if err != nil {
		return nil, err
	}
	return saveRaster(cache, img, out)
}
