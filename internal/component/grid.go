package component

import "github.com/blockbyte/engine/internal/grid"

// GridSimulation attaches a particle field to an entity.
// Scale is screen pixels per cell.
type GridSimulation struct {
	Grid   *grid.Grid
	Scale  int
	Paused bool
}
