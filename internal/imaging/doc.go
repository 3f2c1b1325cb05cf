// Package imaging implements the file-level raster operations of the MCP
// server on top of package pnm.
//
// Every operation reads its input through an ImageCache, works on a copy
// of the cached raster, writes a binary PGM or PPM (or, for Export, a PNG,
// JPEG, GIF, TIFF or BMP) and evicts the written path from the cache so
// a later read sees the new file.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Samples
//
// Crop, flips, channel extraction and the gray conversions operate on the
// stored samples and keep the source max value. Color sampling, dominant
// colors, edge detection and Export read the scaled image.Image view, in
// which samples are mapped from [0, MaxValue] to [0, 255].
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: "#RRGGBB"
//   - RGB: scaled 8-bit components
//   - Raw: samples as stored in the file
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached rasters are
// shared and never modified in place.
package imaging
