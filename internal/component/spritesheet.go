package component

import (
	"image"

	"github.com/blockbyte/engine/internal/level"
)

// SpriteSheet is a tile layer painted from a sprite sheet image.
//
// SizeError and FileError are raised by the editor when the typed tile size
// is not 8/16/32 or the image cannot be opened; the simulation keeps running.
type SpriteSheet struct {
	Sheet        *level.Sheet
	Image        image.Image
	SelectedTile int
	Imported     bool

	SizeError bool
	FileError bool

	// OnRelease returns Image to the asset cache.
	OnRelease func()
}

// Release drops the sheet image reference.
func (s *SpriteSheet) Release() {
	if s.OnRelease != nil {
		s.OnRelease()
		s.OnRelease = nil
	}
}

// Columns returns how many tiles one row of the sheet image holds.
func (s *SpriteSheet) Columns() int {
	if s.Image == nil || s.Sheet == nil || s.Sheet.TileSize <= 0 {
		return 0
	}
	return s.Image.Bounds().Dx() / s.Sheet.TileSize
}
