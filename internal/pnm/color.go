package pnm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// Channel indices into a ColorImage pixel.
const (
	ChannelRed   = 0
	ChannelGreen = 1
	ChannelBlue  = 2
)

// ColorImage is a three channel raster with interleaved R,G,B samples.
//
// ColorImage implements image.Image; At scales samples to [0, 255] and
// reports them as opaque color.RGBA.
type ColorImage struct {
	Width    int
	Height   int
	MaxValue int
	// Pix holds Width*Height*3 samples, R,G,B per pixel, row-major.
	Pix []uint8
}

// DecodeColor reads a PPM image in either the text ("P3") or binary ("P6")
// encoding.
//
// Errors are the same as for DecodeGray, with P3/P6 as the accepted magic
// numbers and a payload of Width*Height*3 samples.
func DecodeColor(r io.Reader) (*ColorImage, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	return decodeColorBody(br, h)
}

func decodeColorBody(br *bufio.Reader, h Header) (*ColorImage, error) {
	if h.Format != FormatColorText && h.Format != FormatColorBinary {
		return nil, fmt.Errorf("%w: %q is not a PPM magic number", ErrUnsupportedFormat, h.Magic)
	}

	n, err := sampleCount(h.Width, h.Height, 3)
	if err != nil {
		return nil, err
	}
	img := &ColorImage{
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

// LoadColor opens path and decodes it with DecodeColor.
func LoadColor(path string) (*ColorImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer f.Close()

	img, err := DecodeColor(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// NewColor returns a zero-filled (black) image with MaxValue 255.
func NewColor(width, height int) (*ColorImage, error) {
	n, err := sampleCount(width, height, 3)
	if err != nil {
		return nil, err
	}
	return &ColorImage{
		Width:    width,
		Height:   height,
		MaxValue: 255,
		Pix:      make([]uint8, n),
	}, nil
}

// NewColorFromBuffer returns an image holding a copy of the first
// width*height*3 bytes of buf.
func NewColorFromBuffer(buf []uint8, width, height, maxValue int) (*ColorImage, error) {
	n, err := sampleCount(width, height, 3)
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
	return &ColorImage{
		Width:    width,
		Height:   height,
		MaxValue: maxValue,
		Pix:      pix,
	}, nil
}

// ColorFromImage converts any image to a ColorImage. Alpha is dropped
// after un-premultiplying.
func ColorFromImage(src image.Image) (*ColorImage, error) {
	b := src.Bounds()
	img, err := NewColor(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = c.R, c.G, c.B
			i += 3
		}
	}
	return img, nil
}

// Header returns the header Encode writes for c.
func (c *ColorImage) Header() Header {
	return Header{
		Magic:    FormatColorBinary.Magic(),
		Format:   FormatColorBinary,
		Width:    c.Width,
		Height:   c.Height,
		MaxValue: c.MaxValue,
	}
}

// Encode writes c as a binary ("P6") PPM.
func (c *ColorImage) Encode(w io.Writer) error {
	return writeBinary(w, FormatColorBinary.Magic(), c.Width, c.Height, c.MaxValue, c.Pix)
}

// Save writes c to path as a binary PPM, replacing any existing file.
func (c *ColorImage) Save(path string) error {
	return saveFile(path, c.Encode)
}

// Clone returns a deep copy of c.
func (c *ColorImage) Clone() Image {
	return c.clone()
}

func (c *ColorImage) clone() *ColorImage {
	pix := make([]uint8, len(c.Pix))
	copy(pix, c.Pix)
	return &ColorImage{Width: c.Width, Height: c.Height, MaxValue: c.MaxValue, Pix: pix}
}

// ToGray replaces every channel of every pixel with ((R+G+B)/3) % 255,
// in place.
//
// The modulo is not a saturation: a pixel whose mean is exactly 255
// (pure white) becomes 0. Use GrayByMean for a plain average.
func (c *ColorImage) ToGray() {
	for i := 0; i+2 < len(c.Pix); i += 3 {
		v := uint8((int(c.Pix[i]) + int(c.Pix[i+1]) + int(c.Pix[i+2])) / 3 % 255)
		c.Pix[i], c.Pix[i+1], c.Pix[i+2] = v, v, v
	}
}

// Channel returns a new Width*Height buffer holding one channel of c.
//
// Parameters:
//   - channel: ChannelRed (0), ChannelGreen (1) or ChannelBlue (2).
//
// Returns ErrInvalidChannel for any other index.
func (c *ColorImage) Channel(channel int) ([]uint8, error) {
	if channel < ChannelRed || channel > ChannelBlue {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChannel, channel)
	}
	out := make([]uint8, c.Width*c.Height)
	for i := range out {
		out[i] = c.Pix[3*i+channel]
	}
	return out, nil
}

// GrayByChannel converts c to a GrayImage by applying ToGray to a copy
// of c and taking its red channel. The modulo behaviour of ToGray
// carries over, so white pixels become 0. c is not modified.
func (c *ColorImage) GrayByChannel() *GrayImage {
	tmp := c.clone()
	tmp.ToGray()
	pix, _ := tmp.Channel(ChannelRed)
	return &GrayImage{Width: c.Width, Height: c.Height, MaxValue: c.MaxValue, Pix: pix}
}

// GrayByMean converts c to a GrayImage whose samples are the integer
// mean (R+G+B)/3 of each pixel. c is not modified.
func (c *ColorImage) GrayByMean() *GrayImage {
	pix := make([]uint8, c.Width*c.Height)
	for i := range pix {
		p := c.Pix[3*i : 3*i+3]
		pix[i] = uint8((int(p[0]) + int(p[1]) + int(p[2])) / 3)
	}
	return &GrayImage{Width: c.Width, Height: c.Height, MaxValue: c.MaxValue, Pix: pix}
}

// FlipHorizontal mirrors c left to right in place. Pixel x swaps with
// pixel Width-1-x; R,G,B order within a pixel is kept.
func (c *ColorImage) FlipHorizontal() {
	flipRows(c.Pix, c.Width, c.Height, 3)
}

// FlipVertical mirrors c top to bottom in place. Row y swaps with row
// Height-1-y.
func (c *ColorImage) FlipVertical() {
	flipColumns(c.Pix, c.Width, c.Height, 3)
}

func (c *ColorImage) ColorModel() color.Model { return color.RGBAModel }

func (c *ColorImage) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

func (c *ColorImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return color.RGBA{}
	}
	i := 3 * (y*c.Width + x)
	return color.RGBA{
		R: scale(c.Pix[i], c.MaxValue),
		G: scale(c.Pix[i+1], c.MaxValue),
		B: scale(c.Pix[i+2], c.MaxValue),
		A: 0xff,
	}
}
