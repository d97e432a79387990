package component

// Tile marks an entity created for one placed tile of a sprite sheet.
type Tile struct {
	ID  int
	Col int
	Row int
}
