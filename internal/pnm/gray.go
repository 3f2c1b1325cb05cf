package pnm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// GrayImage is a single channel raster with one byte per pixel.
//
// GrayImage implements image.Image. At reports samples scaled from
// [0, MaxValue] to [0, 255] so the image composes with the standard
// library and other image tooling.
type GrayImage struct {
	Width    int
	Height   int
	MaxValue int
	// Pix holds Width*Height samples in row-major order.
	Pix []uint8
}

// DecodeGray reads a PGM image in either the text ("P2") or binary ("P5")
// encoding.
//
// # Errors
//
// Header errors are as described for ReadHeader. In addition:
//   - ErrUnsupportedFormat if the magic number is not P2 or P5
//   - ErrTruncatedPayload if a P5 body is shorter than Width*Height bytes
//   - ErrMalformedPayload if a P2 body has a missing or non-numeric sample
func DecodeGray(r io.Reader) (*GrayImage, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	return decodeGrayBody(br, h)
}

func decodeGrayBody(br *bufio.Reader, h Header) (*GrayImage, error) {
	if !h.Format.Gray() {
		return nil, fmt.Errorf("%w: %q is not a PGM magic number", ErrUnsupportedFormat, h.Magic)
	}

	n, err := sampleCount(h.Width, h.Height, 1)
	if err != nil {
		return nil, err
	}
	img := &GrayImage{
		Width:    h.Width,
		Height:   h.Height,
		MaxValue: h.MaxValue,
		Pix:      make([]uint8, n),
	}
	if err := readPayload(br, h.Format, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

// LoadGray opens path and decodes it with DecodeGray.
func LoadGray(path string) (*GrayImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer f.Close()

	img, err := DecodeGray(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// NewGray returns a zero-filled image with MaxValue 255.
func NewGray(width, height int) (*GrayImage, error) {
	n, err := sampleCount(width, height, 1)
	if err != nil {
		return nil, err
	}
	return &GrayImage{
		Width:    width,
		Height:   height,
		MaxValue: 255,
		Pix:      make([]uint8, n),
	}, nil
}

// NewGrayFromBuffer returns an image holding a copy of the first
// width*height bytes of buf. Later changes to buf do not affect the image.
func NewGrayFromBuffer(buf []uint8, width, height, maxValue int) (*GrayImage, error) {
	n, err := sampleCount(width, height, 1)
	if err != nil {
		return nil, err
	}
	if maxValue <= 0 || maxValue > 255 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxValue, maxValue)
	}
	if len(buf) < n {
		return nil, fmt.Errorf("%w: have %d samples, need %d", ErrBufferTooSmall, len(buf), n)
	}

	pix := make([]uint8, n)
	copy(pix, buf)
	return &GrayImage{
		Width:    width,
		Height:   height,
		MaxValue: maxValue,
		Pix:      pix,
	}, nil
}

// GrayFromImage converts any image to a GrayImage using the standard
// gray color model.
func GrayFromImage(src image.Image) (*GrayImage, error) {
	b := src.Bounds()
	img, err := NewGray(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Pix[i] = color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return img, nil
}

// Header returns the header Encode writes for g.
func (g *GrayImage) Header() Header {
	return Header{
		Magic:    FormatGrayBinary.Magic(),
		Format:   FormatGrayBinary,
		Width:    g.Width,
		Height:   g.Height,
		MaxValue: g.MaxValue,
	}
}

// Encode writes g as a binary ("P5") PGM.
func (g *GrayImage) Encode(w io.Writer) error {
	return writeBinary(w, FormatGrayBinary.Magic(), g.Width, g.Height, g.MaxValue, g.Pix)
}

// Save writes g to path as a binary PGM, replacing any existing file.
func (g *GrayImage) Save(path string) error {
	return saveFile(path, g.Encode)
}

// Clone returns a deep copy of g.
func (g *GrayImage) Clone() Image {
	return g.clone()
}

func (g *GrayImage) clone() *GrayImage {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &GrayImage{Width: g.Width, Height: g.Height, MaxValue: g.MaxValue, Pix: pix}
}

// FlipHorizontal mirrors g left to right in place.
func (g *GrayImage) FlipHorizontal() {
	flipRows(g.Pix, g.Width, g.Height, 1)
}

// FlipVertical mirrors g top to bottom in place.
func (g *GrayImage) FlipVertical() {
	flipColumns(g.Pix, g.Width, g.Height, 1)
}

func (g *GrayImage) ColorModel() color.Model { return color.GrayModel }

func (g *GrayImage) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

func (g *GrayImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return color.Gray{}
	}
	return color.Gray{Y: scale(g.Pix[y*g.Width+x], g.MaxValue)}
}

// scale maps v from [0, maxValue] to [0, 255], clamping samples that
// exceed maxValue.
func scale(v uint8, maxValue int) uint8 {
	if maxValue == 255 || maxValue <= 0 {
		return v
	}
	s := int(v) * 255 / maxValue
	if s > 255 {
		return 255
	}
	return uint8(s)
}
