// Package asset loads and caches sprite images. A Cache is owned by the
// engine and handed to whoever needs textures; there is no global instance.
package asset

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
)

type entry struct {
	img  image.Image
	refs int
}

// Cache maps file paths to decoded images.
type Cache struct {
	root    string
	entries map[string]*entry
	log     *zap.Logger
}

// NewCache resolves relative paths against root.
func NewCache(root string, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		root:    root,
		entries: make(map[string]*entry, 16),
		log:     log,
	}
}

func (c *Cache) resolve(path string) string {
	if filepath.IsAbs(path) || c.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(c.root, path)
}

// Load returns the image at path, decoding it on first use. Every successful
// Load must be paired with a Release.
func (c *Cache) Load(path string) (image.Image, error) {
	key := c.resolve(path)
	if e, ok := c.entries[key]; ok {
		e.refs++
		return e.img, nil
	}
	img, err := decode(key)
	if err != nil {
		return nil, err
	}
	c.entries[key] = &entry{img: img, refs: 1}
	c.log.Debug("texture loaded",
		zap.String("path", key),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	)
	return img, nil
}

// Release drops one reference and evicts the image when none remain.
func (c *Cache) Release(path string) {
	key := c.resolve(path)
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(c.entries, key)
	}
}

// Len returns the number of cached images.
func (c *Cache) Len() int { return len(c.entries) }

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".png":
		img, err = png.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return img, nil
}
