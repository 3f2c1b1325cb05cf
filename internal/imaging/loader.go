package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/ironsheep/pnm-tools-mcp/internal/pnm"
)

// ErrNotRaster is returned when a PNM operation is requested on a file
// that decodes as some other image format.
var ErrNotRaster = errors.New("not a PGM or PPM image")

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image values keyed by their file path.
// PGM and PPM files decode to *pnm.GrayImage and *pnm.ColorImage through
// the formats registered by package pnm; PNG, JPEG and GIF are also
// accepted so they can be imported.
//
// Cached images are shared between callers and must be treated as
// read-only. Operations that transform a raster work on a Clone.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.LoadRaster("/path/to/scan.pgm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/scan.pgm") // after overwriting the file
type ImageCache struct {
	mu       sync.RWMutex
	images   map[string]image.Image
	disabled bool
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// NewPassthroughCache returns a cache that decodes on every Load and
// never retains images.
func NewPassthroughCache() *ImageCache {
	c := NewImageCache()
	c.disabled = true
	return c
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// # Errors
//
//   - Returns error wrapping pnm.ErrFileOpen if the file cannot be opened
//   - Returns the pnm decode error for malformed PGM/PPM files
//   - Returns error if the file is not a supported image at all
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pnm.ErrFileOpen, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if !c.disabled {
		c.mu.Lock()
		c.images[path] = img
		c.mu.Unlock()
	}

	return img, nil
}

// LoadRaster loads path and requires it to be a PGM or PPM image.
func (c *ImageCache) LoadRaster(path string) (pnm.Image, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	r, ok := img.(pnm.Image)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRaster)
	}
	return r, nil
}

// LoadColor loads path and requires it to be a PPM image.
func (c *ImageCache) LoadColor(path string) (*pnm.ColorImage, error) {
	r, err := c.LoadRaster(path)
	if err != nil {
		return nil, err
	}
	ppm, ok := r.(*pnm.ColorImage)
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected a PPM image", path, pnm.ErrUnsupportedFormat)
	}
	return ppm, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// Tools call Evict after writing a file so a later Load sees the new
// contents. If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "pgm", "ppm", "png", "jpeg" or "gif", detected from the
	// file contents.
	Format string `json:"format"`

	// Magic is the PNM magic number ("P2", "P3", "P5", "P6").
	Magic string `json:"magic,omitempty"`

	// Encoding is "text" or "binary" for PNM files.
	Encoding string `json:"encoding,omitempty"`

	// MaxValue is the PNM max sample value.
	MaxValue int `json:"max_value,omitempty"`

	// Channels is 1 for PGM and 3 for PPM.
	Channels int `json:"channels,omitempty"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo returns metadata about the image at path.
//
// PNM files are described from their header alone, so the original
// magic number and encoding are reported even though decoding would
// discard them. Other formats are probed with image.DecodeConfig.
// Neither path populates the cache.
func LoadImageInfo(path string) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pnm.ErrFileOpen, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pnm.ErrFileOpen, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	info := &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}

	if format == "pgm" || format == "ppm" {
		h, err := pnm.LoadHeader(path)
		if err != nil {
			return nil, err
		}
		info.Magic = h.Magic
		info.MaxValue = h.MaxValue
		info.Channels = h.Format.Channels()
		info.Encoding = "text"
		if h.Format.Binary() {
			info.Encoding = "binary"
		}
	}

	return info, nil
}
