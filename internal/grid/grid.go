// Package grid implements the falling-sand cellular automaton: a fixed
// row-major array of cells updated in place, bottom row first.
package grid

import "image/color"

const (
	DefaultRows = 256
	DefaultCols = 256

	// MaxCells bounds Rows*Cols for grids built from config or scripts.
	MaxCells = 2048 * 2048
)

// FitsCells reports whether a rows x cols grid stays within MaxCells.
func FitsCells(rows, cols int) bool {
	return rows > 0 && cols > 0 && rows <= MaxCells/cols
}

// Vec2 is a cell-local velocity. Only carried, the automaton does not read it.
type Vec2 struct {
	X, Y float32
}

// Cell is one grid slot.
type Cell struct {
	Material Material
	LifeTime float32
	Velocity Vec2
	Color    color.RGBA
	Updated  bool // set when the cell received a particle during the current Step
}

var emptyCell = Cell{}

// Grid is the particle field. Row 0 is the top; gravity pulls towards
// higher rows.
type Grid struct {
	Rows    int
	Cols    int
	Brush   Material
	Cells   []Cell
	Palette Palette
}

// New allocates an empty rows x cols grid with a sand brush.
func New(rows, cols int) *Grid {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return &Grid{
		Rows:    rows,
		Cols:    cols,
		Brush:   Sand,
		Cells:   make([]Cell, rows*cols),
		Palette: DefaultPalette,
	}
}

func (g *Grid) Index(row, col int) int { return row*g.Cols + col }

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// IsEmpty reports whether the flat index holds no particle. Indices outside
// the grid count as occupied so callers never move a particle off the field.
func (g *Grid) IsEmpty(index int) bool {
	if index < 0 || index >= len(g.Cells) {
		return false
	}
	return g.Cells[index].Material == Empty
}

// At returns the cell at (row, col), or an empty cell outside the grid.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return emptyCell
	}
	return g.Cells[g.Index(row, col)]
}

// Set writes c at (row, col). Writes outside the grid are dropped.
func (g *Grid) Set(row, col int, c Cell) {
	if !g.InBounds(row, col) {
		return
	}
	g.Cells[g.Index(row, col)] = c
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = emptyCell
	}
}

// Count returns how many cells hold m.
func (g *Grid) Count(m Material) int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Material == m {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	return len(g.Cells) - g.Count(Empty)
}

// FillRGBA writes one RGBA pixel per cell into buf, which must hold
// 4*Rows*Cols bytes. Empty cells are transparent.
func (g *Grid) FillRGBA(buf []byte) {
	for i := range g.Cells {
		c := g.Cells[i].Color
		if g.Cells[i].Material == Empty {
			c = color.RGBA{}
		}
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}
