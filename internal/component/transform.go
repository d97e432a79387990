package component

// Transform is an entity's position in screen pixels.
// HasParent marks entities placed by a container (level tiles) so the
// editor hierarchy can hide them.
type Transform struct {
	X, Y      float64
	HasParent bool
}
