package pnm

import "errors"

var (
	// ErrAllocation is returned when a raster would need more samples
	// than MaxSamples.
	ErrAllocation = errors.New("pnm: raster too large to allocate")

	// ErrFileOpen is returned when the source or destination file
	// cannot be opened.
	ErrFileOpen = errors.New("pnm: unable to open file")

	// ErrTruncatedHeader is returned when the input ends before the
	// header is complete.
	ErrTruncatedHeader = errors.New("pnm: truncated header")

	// ErrMalformedHeader is returned when width, height or max value
	// is missing or not a decimal integer.
	ErrMalformedHeader = errors.New("pnm: malformed header")

	// ErrInvalidMaxValue is returned when the max value is outside (0, 255].
	ErrInvalidMaxValue = errors.New("pnm: max value must be in (0, 255]")

	// ErrTruncatedPayload is returned when a binary payload holds fewer
	// bytes than the header requires.
	ErrTruncatedPayload = errors.New("pnm: truncated payload")

	// ErrMalformedPayload is returned when a text payload has a missing
	// or non-numeric sample.
	ErrMalformedPayload = errors.New("pnm: malformed payload")

	// ErrUnsupportedFormat is returned for a magic number the decoder
	// does not handle.
	ErrUnsupportedFormat = errors.New("pnm: unsupported format")

	// ErrInvalidChannel is returned for a channel index outside [0, 2].
	ErrInvalidChannel = errors.New("pnm: channel must be 0, 1 or 2")

	// ErrBufferTooSmall is returned when a caller buffer holds fewer
	// samples than the requested dimensions need.
	ErrBufferTooSmall = errors.New("pnm: buffer too small")

	// ErrInvalidDimensions is returned for non-positive width or height.
	ErrInvalidDimensions = errors.New("pnm: width and height must be positive")
)
