package grid

import "github.com/blockbyte/engine/internal/rng"

// Step advances the automaton by one tick.
//
// Rows are scanned from the bottom up and each row left to right, reading
// and writing the same buffer. A particle that has already moved this tick
// carries the Updated flag and is skipped, so water pushed sideways into a
// cell further along the row is not moved a second time.
//
// Sand falls straight down when it can, otherwise tries one randomly chosen
// diagonal below. Water does the same and then tries the same direction
// along its own row. Stone and empty cells never move.
func (g *Grid) Step(r *rng.RNG) {
	for i := range g.Cells {
		g.Cells[i].Updated = false
	}
	for row := g.Rows - 1; row >= 0; row-- {
		for col := 0; col < g.Cols; col++ {
			c := &g.Cells[g.Index(row, col)]
			if c.Updated {
				continue
			}
			switch c.Material {
			case Sand:
				g.fall(row, col, r, false)
			case Water:
				g.fall(row, col, r, true)
			}
		}
	}
}

func (g *Grid) fall(row, col int, r *rng.RNG, flows bool) {
	dir := -1
	if r.Bool() {
		dir = 1
	}
	switch {
	case g.free(row+1, col):
		g.move(row, col, row+1, col)
	case g.free(row+1, col+dir):
		g.move(row, col, row+1, col+dir)
	case flows && g.free(row, col+dir):
		g.move(row, col, row, col+dir)
	}
}

// free checks bounds per axis so a move never wraps onto the next row.
func (g *Grid) free(row, col int) bool {
	return g.InBounds(row, col) && g.IsEmpty(g.Index(row, col))
}

func (g *Grid) move(fromRow, fromCol, toRow, toCol int) {
	src := g.Index(fromRow, fromCol)
	dst := g.Index(toRow, toCol)
	g.Cells[dst] = g.Cells[src]
	g.Cells[dst].Updated = true
	g.Cells[src] = emptyCell
}
