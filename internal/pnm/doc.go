// Package pnm reads and writes 8-bit PGM and PPM raster images.
//
// Two image types are provided:
//   - GrayImage: single channel, magic "P2" (decimal text body) or "P5" (raw bytes)
//   - ColorImage: interleaved R,G,B, magic "P3" (decimal text body) or "P6" (raw bytes)
//
// # File Layout
//
// Both families share one header grammar:
//
//	<2-byte magic>\n
//	[ #comment\n ]*
//	<width> <height>\n
//	<max value>\n
//	<payload>
//
// Comment lines are accepted only between the magic number and the
// dimension line. Anything following a parsed token on the same line
// (extra whitespace, stray text) is discarded up to the newline.
//
// Both text and binary variants are decoded. Encoding always produces
// the binary variant ("P5" or "P6"), so re-saving a text file converts it.
//
// # Samples
//
// Sample buffers are row-major. Color samples are stored as
// R,G,B triples, so the pixel at (x, y) starts at 3*(y*Width+x).
// Max value is restricted to (0, 255]; 16-bit rasters are not supported.
//
// # Error Handling
//
// Failures are reported with the sentinel errors in this package,
// wrapped with context. Use errors.Is to classify them:
//
//	img, err := pnm.LoadGray("scan.pgm")
//	if errors.Is(err, pnm.ErrTruncatedPayload) {
//	    // file is shorter than its header claims
//	}
//
// # Thread Safety
//
// Images are plain values with no internal locking. Operations that
// derive a new image always copy samples, so derived images never share
// a buffer with their source. A single image must not be mutated from
// several goroutines at once.
//
// # Image Registration
//
// Importing this package registers "pgm" and "ppm" with the standard
// image package, so image.Decode recognises PNM files.
package pnm
