// Package ocr provides Optical Character Recognition (OCR) for PGM and PPM
// rasters using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Images
// are handed to Tesseract as temporary binary PGM or PPM files, which
// Leptonica reads natively, so a raster never passes through another
// image format on its way to recognition.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// Several languages may be combined with "+", e.g. "eng+deu".
//
// # Functions
//
//   - ExtractText: Full-image OCR, returns all text with word bounding boxes
//   - ExtractTextFromRegion: OCR on a rectangular region, boxes in image coordinates
//   - DetectTextRegions: Block-level text locations without the text
//
// # Temporary Files
//
// Every call writes one temporary file in os.TempDir() and removes it
// before returning. Samples are scaled to max value 255 in that file.
package ocr
