package pnm

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
)

// Image is implemented by *GrayImage and *ColorImage.
type Image interface {
	image.Image

	// Header returns the header the image is written with.
	Header() Header
	Encode(w io.Writer) error
	Save(path string) error
	Clone() Image
	FlipHorizontal()
	FlipVertical()
}

// Decode reads a PGM or PPM image, choosing the image type from the
// magic number. The result is a *GrayImage or a *ColorImage.
func Decode(r io.Reader) (Image, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	switch {
	case h.Format.Gray():
		img, err := decodeGrayBody(br, h)
		if err != nil {
			return nil, err
		}
		return img, nil
	case h.Format != FormatUnknown:
		img, err := decodeColorBody(br, h)
		if err != nil {
			return nil, err
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, h.Magic)
	}
}

// Load opens path and decodes it with Decode.
func Load(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// saveFile creates path and writes it with encode. The file is closed
// before returning on every path.
func saveFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func init() {
	image.RegisterFormat("pgm", "P2", decodeImage, DecodeConfig)
	image.RegisterFormat("pgm", "P5", decodeImage, DecodeConfig)
	image.RegisterFormat("ppm", "P3", decodeImage, DecodeConfig)
	image.RegisterFormat("ppm", "P6", decodeImage, DecodeConfig)
}
