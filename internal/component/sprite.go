package component

import "image"

// Sprite draws an image at the entity's transform.
// Width and Height are in board units.
type Sprite struct {
	Path    string
	Width   float64
	Height  float64
	Texture image.Image

	OnRelease func()
}

// Release hands the texture back to the asset cache.
func (s *Sprite) Release() {
	if s.OnRelease != nil {
		s.OnRelease()
		s.OnRelease = nil
	}
	s.Texture = nil
}
