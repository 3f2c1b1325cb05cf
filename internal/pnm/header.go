package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
)

// MaxSamples caps width*height*channels for any raster this package
// allocates.
const MaxSamples = 1 << 28

// Format identifies a PNM family and body encoding from its magic number.
type Format int

const (
	FormatUnknown Format = iota
	FormatGrayText
	FormatGrayBinary
	FormatColorText
	FormatColorBinary
)

// ParseFormat maps a 2-byte magic number to a Format.
func ParseFormat(magic []byte) Format {
	switch string(magic) {
	case "P2":
		return FormatGrayText
	case "P5":
		return FormatGrayBinary
	case "P3":
		return FormatColorText
	case "P6":
		return FormatColorBinary
	default:
		return FormatUnknown
	}
}

// Magic returns the magic number for f, or "" for FormatUnknown.
func (f Format) Magic() string {
	switch f {
	case FormatGrayText:
		return "P2"
	case FormatGrayBinary:
		return "P5"
	case FormatColorText:
		return "P3"
	case FormatColorBinary:
		return "P6"
	default:
		return ""
	}
}

func (f Format) String() string {
	switch f {
	case FormatGrayText:
		return "pgm-text"
	case FormatGrayBinary:
		return "pgm-binary"
	case FormatColorText:
		return "ppm-text"
	case FormatColorBinary:
		return "ppm-binary"
	default:
		return "unknown"
	}
}

// Gray reports whether f is a single channel format.
func (f Format) Gray() bool {
	return f == FormatGrayText || f == FormatGrayBinary
}

// Binary reports whether the payload of f is raw bytes.
func (f Format) Binary() bool {
	return f == FormatGrayBinary || f == FormatColorBinary
}

// Channels returns the number of samples per pixel, or 0 for FormatUnknown.
func (f Format) Channels() int {
	switch f {
	case FormatGrayText, FormatGrayBinary:
		return 1
	case FormatColorText, FormatColorBinary:
		return 3
	default:
		return 0
	}
}

// Header holds the fields parsed from a PNM header.
type Header struct {
	// Magic is the raw 2-byte magic number as read from the file.
	Magic    string `json:"magic"`
	Format   Format `json:"-"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxValue int    `json:"max_value"`
}

// ReadHeader consumes a PNM header from r and leaves r positioned at the
// first payload byte.
//
// The header is read in a fixed order:
//  1. two bytes of magic number, then the rest of that line
//  2. any number of lines starting with '#'
//  3. width and height as decimal tokens, then the rest of that line
//  4. max value as a decimal token, then the rest of that line
//
// Comments are only recognised in step 2.
//
// # Errors
//
//   - ErrTruncatedHeader if the input ends before a required newline
//   - ErrMalformedHeader if a numeric field is missing or not a number
//   - ErrInvalidMaxValue if max value is outside (0, 255]
//   - ErrInvalidDimensions if width or height is not positive
//   - ErrAllocation if the raster would exceed MaxSamples
//
// An unrecognised magic number is not an error here; the returned
// Header carries FormatUnknown and decoders reject it.
func ReadHeader(r *bufio.Reader) (Header, error) {
	t := tokenizer{r: r}

	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Header{}, fmt.Errorf("%w: reading magic number", ErrTruncatedHeader)
	}
	h := Header{
		Magic:  string(magic[:]),
		Format: ParseFormat(magic[:]),
	}

	if err := t.skipLine(); err != nil {
		return Header{}, fmt.Errorf("%w: after magic number", ErrTruncatedHeader)
	}
	if err := t.skipComments(); err != nil {
		return Header{}, fmt.Errorf("%w: inside comment", ErrTruncatedHeader)
	}

	var err error
	if h.Width, err = t.readInt(); err != nil {
		return Header{}, fmt.Errorf("%w: width: %v", ErrMalformedHeader, err)
	}
	if h.Height, err = t.readInt(); err != nil {
		return Header{}, fmt.Errorf("%w: height: %v", ErrMalformedHeader, err)
	}
	if err := t.skipLine(); err != nil {
		return Header{}, fmt.Errorf("%w: after dimensions", ErrTruncatedHeader)
	}

	if h.MaxValue, err = t.readInt(); err != nil {
		return Header{}, fmt.Errorf("%w: max value: %v", ErrMalformedHeader, err)
	}
	if h.MaxValue <= 0 || h.MaxValue > 255 {
		return Header{}, fmt.Errorf("%w: got %d", ErrInvalidMaxValue, h.MaxValue)
	}
	if err := t.skipLine(); err != nil {
		return Header{}, fmt.Errorf("%w: after max value", ErrTruncatedHeader)
	}

	channels := h.Format.Channels()
	if channels == 0 {
		channels = 1
	}
	if _, err := sampleCount(h.Width, h.Height, channels); err != nil {
		return Header{}, err
	}

	return h, nil
}

// LoadHeader reads only the header of the file at path.
func LoadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer f.Close()

	return ReadHeader(bufio.NewReader(f))
}

// DecodeConfig returns the color model and dimensions of a PNM image
// without reading its payload.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := ReadHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}

	var model color.Model
	switch {
	case h.Format.Gray():
		model = color.GrayModel
	case h.Format != FormatUnknown:
		model = color.RGBAModel
	default:
		return image.Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, h.Magic)
	}

	return image.Config{
		ColorModel: model,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// sampleCount returns width*height*channels after checking the
// dimensions are positive and the total fits MaxSamples.
func sampleCount(width, height, channels int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxSamples/height/channels {
		return 0, fmt.Errorf("%w: %dx%dx%d", ErrAllocation, width, height, channels)
	}
	return width * height * channels, nil
}

var errNoDigits = errors.New("expected decimal integer")

// tokenizer reads header and text-payload tokens from a buffered stream.
type tokenizer struct {
	r *bufio.Reader
}

// skipLine discards bytes up to and including the next '\n'.
func (t tokenizer) skipLine() error {
	for {
		_, err := t.r.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			continue
		}
		return err
	}
}

// skipComments discards consecutive lines that start with '#'. The first
// byte of a non-comment line is left unread.
func (t tokenizer) skipComments() error {
	for {
		b, err := t.r.Peek(1)
		if err != nil || b[0] != '#' {
			return nil
		}
		if err := t.skipLine(); err != nil {
			return err
		}
	}
}

// readInt skips leading whitespace and parses an optionally signed decimal
// integer. The byte that ends the token is left unread.
func (t tokenizer) readInt() (int, error) {
	b, err := t.r.ReadByte()
	for err == nil && isSpace(b) {
		b, err = t.r.ReadByte()
	}
	if err != nil {
		return 0, err
	}

	tok := make([]byte, 0, 8)
	if b == '+' || b == '-' {
		tok = append(tok, b)
		if b, err = t.r.ReadByte(); err != nil {
			return 0, errNoDigits
		}
	}
	for err == nil && isDigit(b) {
		tok = append(tok, b)
		b, err = t.r.ReadByte()
	}
	if err == nil {
		_ = t.r.UnreadByte()
	}

	n, convErr := strconv.Atoi(string(tok))
	if convErr != nil {
		return 0, errNoDigits
	}
	return n, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
