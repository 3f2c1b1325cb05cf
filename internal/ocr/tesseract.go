package ocr

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this text in the image.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the complete results of text extraction from an image.
type OCRResult struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words with their bounding boxes and confidence scores.
	// May be empty if bounding box extraction fails (text will still be in FullText).
	Regions []TextRegion `json:"regions"`
}

// ExtractText performs OCR on an entire image and returns recognized text.
//
// The image is written to a temporary binary PGM or PPM (samples scaled to
// max value 255) because Tesseract reads from a file path. Leptonica reads
// PNM natively, so no other format is involved.
//
// Parameters:
//   - img: The source image, typically a *pnm.GrayImage or *pnm.ColorImage.
//   - language: Tesseract language code (e.g., "eng"). The corresponding
//     language data must be installed on the system.
//
// If word-level bounding box extraction fails the full text is still
// returned with an empty Regions slice.
func ExtractText(img image.Image, language string) (*OCRResult, error) {
	tmpPath, err := SaveImageToTemp(img, "ocr-image")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	return extractTextFromFile(tmpPath, language)
}

func extractTextFromFile(imagePath string, language string) (*OCRResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{
			FullText: text,
			Regions:  []TextRegion{},
		}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     boundsOf(box.Box),
		})
	}

	return &OCRResult{
		FullText: text,
		Regions:  regions,
	}, nil
}

// ExtractTextFromRegion performs OCR on a rectangular region of an image.
//
// Parameters:
//   - img: The source image (already loaded into memory).
//   - x1, y1: Top-left corner of the region (inclusive).
//   - x2, y2: Bottom-right corner of the region (exclusive).
//   - language: Tesseract language code (e.g., "eng").
//
// Bounding boxes in the result are translated back to the coordinates of
// img. If the region starts at (100, 50) and a word is found at (10, 20)
// within the crop, the returned bounds start at (110, 70).
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*OCRResult, error) {
	region := image.Rect(x1, y1, x2, y2)
	if region.Empty() || !region.In(img.Bounds()) {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) is empty or outside image bounds %v", x1, y1, x2, y2, img.Bounds())
	}

	cropped := imaging.Crop(img, region)

	result, err := ExtractText(cropped, language)
	if err != nil {
		return nil, err
	}

	for i := range result.Regions {
		result.Regions[i].Bounds.X1 += x1
		result.Regions[i].Bounds.Y1 += y1
		result.Regions[i].Bounds.X2 += x1
		result.Regions[i].Bounds.Y2 += y1
	}

	return result, nil
}

// DetectTextRegionsResult contains text region locations without the actual text content.
type DetectTextRegionsResult struct {
	// Regions is the list of detected text regions with bounding boxes.
	Regions []TextRegionBox `json:"regions"`

	// Count is the number of text regions detected.
	Count int `json:"count"`
}

// TextRegionBox represents a detected text region's location without its content.
type TextRegionBox struct {
	// Bounds is the bounding box around the text region.
	Bounds Bounds `json:"bounds"`

	// Confidence is Tesseract's confidence score for this being a text region (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// DetectTextRegions finds block-level text regions (RIL_BLOCK) in an
// image. Regions with confidence below minConfidence (0.0 to 1.0) are
// excluded.
func DetectTextRegions(img image.Image, minConfidence float64) (*DetectTextRegionsResult, error) {
	tmpPath, err := SaveImageToTemp(img, "ocr-detect")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to get text regions: %w", err)
	}

	regions := make([]TextRegionBox, 0)
	for _, box := range boxes {
		confidence := float64(box.Confidence) / 100.0
		if confidence < minConfidence {
			continue
		}
		regions = append(regions, TextRegionBox{
			Bounds:     boundsOf(box.Box),
			Confidence: confidence,
		})
	}

	return &DetectTextRegionsResult{
		Regions: regions,
		Count:   len(regions),
	}, nil
}

// SaveImageToTemp writes img to a new temporary file as a binary PGM
// (for gray images) or PPM (for everything else) and returns its path.
//
// The file name is <prefix>-<random>.pgm or .ppm in os.TempDir().
//
// IMPORTANT: The caller is responsible for deleting the temporary file
// after use with os.Remove().
func SaveImageToTemp(img image.Image, prefix string) (string, error) {
	var (
		raster pnm.Image
		ext    string
		err    error
	)
	if isGray(img) {
		raster, err = pnm.GrayFromImage(img)
		ext = ".pgm"
	} else {
		raster, err = pnm.ColorFromImage(img)
		ext = ".ppm"
	}
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", prefix+"-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	if err := raster.Encode(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp image: %w", err)
	}

	return tmpPath, nil
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *pnm.GrayImage, *image.Gray:
		return true
	}
	return img.ColorModel() == color.GrayModel
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{
		X1: r.Min.X,
		Y1: r.Min.Y,
		X2: r.Max.X,
		Y2: r.Max.Y,
	}
}
