package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// DefaultEdgeRadius is the kernel radius used when the caller passes 0.
const DefaultEdgeRadius = 1.0

// EdgeDetect runs edge detection on a PGM or PPM file and writes the
// result as a binary PGM with max value 255.
//
// Parameters:
//   - radius: edge detection kernel radius; 0 selects DefaultEdgeRadius.
//   - threshold: 0 keeps the edge magnitudes; 1-255 binarizes the output
//     so samples >= threshold become 255 and the rest become 0.
//
// # Algorithm
//
// The input is read through its image.Image view, so samples are scaled
// to 8 bits before detection. bild's EdgeDetection convolves the image
// with a Laplacian style kernel of the given radius and the result is
// reduced to luminance with bild's Grayscale.
func EdgeDetect(cache *ImageCache, in, out string, radius float64, threshold int) (*RasterResult, error) {
	if radius == 0 {
		radius = DefaultEdgeRadius
	}
	if radius < 0 {
		return nil, fmt.Errorf("edge radius must be positive, got %g", radius)
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be 0-255, got %d", threshold)
	}

	src, err := cache.LoadRaster(in)
	if err != nil {
		return nil, err
	}

	edges, err := detectEdges(src, radius, threshold)
	if err != nil {
		return nil, err
	}
	return saveRaster(cache, edges, out)
}

func detectEdges(src pnm.Image, radius float64, threshold int) (*pnm.GrayImage, error) {
	gray := effect.Grayscale(effect.EdgeDetection(src, radius))

	edges, err := pnm.GrayFromImage(gray)
	if err != nil {
		return nil, err
	}

	if threshold > 0 {
		for i, v := range edges.Pix {
			if int(v) >= threshold {
				edges.Pix[i] = 255
			} else {
				edges.Pix[i] = 0
			}
		}
	}
	return edges, nil
}
