package imaging

import (
	"fmt"
	"os"
	"sync"

	"github.com/ironsheep/ppm-tools/internal/pixel"
	"github.com/ironsheep/ppm-tools/internal/ppm"
)

// BufferCache provides thread-safe caching of decoded PPM files keyed by path.
//
// Once a file is loaded, subsequent Load calls for the same path return the cached
// buffer without disk I/O. The buffers are shared between callers; the pixel
// transformations never mutate their input, so sharing is safe as long as callers
// do not write to Pix directly.
//
// # Memory Management
//
// Cached buffers stay in memory until Evict or Clear is called. Tools that write
// a file call Evict for the output path so a later Load sees the new contents.
type BufferCache struct {
	mu      sync.RWMutex
	buffers map[string]*pixel.Buffer
}

// NewBufferCache creates an empty cache.
func NewBufferCache() *BufferCache {
	return &BufferCache{
		buffers: make(map[string]*pixel.Buffer),
	}
}

// Load returns the buffer for path, decoding the file on first use.
//
// # Errors
//
//   - The file does not exist or cannot be read
//   - The file is not a valid P3 image (see ppm.ErrFormat and ppm.ErrTruncated)
func (c *BufferCache) Load(path string) (*pixel.Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	buf, err := ppm.Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Clear removes every buffer from the cache.
func (c *BufferCache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*pixel.Buffer)
	c.mu.Unlock()
}

// Evict removes the buffer cached for path, if any.
func (c *BufferCache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Len reports how many buffers are cached.
func (c *BufferCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}

// ImageInfo contains metadata about a PPM file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// MaxValue is the channel ceiling declared in the header.
	MaxValue int `json:"max_value"`

	// Format is always "ppm-p3".
	Format string `json:"format"`

	// ColorDepth is "8-bit" for max values up to 255 and "16-bit" above.
	ColorDepth string `json:"color_depth"`

	// Grayscale is true when every pixel has equal R, G and B channels.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a PPM file through the cache and reports its metadata.
func LoadImageInfo(cache *BufferCache, path string) (*ImageInfo, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	colorDepth := "8-bit"
	if buf.MaxValue > 255 {
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		MaxValue:      buf.MaxValue,
		Format:        "ppm-p3",
		ColorDepth:    colorDepth,
		Grayscale:     buf.IsGray(),
		FileSizeBytes: stat.Size(),
	}, nil
}
