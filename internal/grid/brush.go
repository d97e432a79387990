package grid

import (
	"image/color"

	"github.com/blockbyte/engine/internal/rng"
)

const (
	BrushRadius = 5
	colorJitter = 20
)

// Stamp paints a filled disc of radius BrushRadius centred on
// (centerX, centerY), x being the column and y the row. Every covered cell
// is overwritten with a fresh particle of m whose colour is the palette
// colour jittered per channel. Stamping Empty erases. Cells outside the
// grid are skipped. Returns the number of cells written.
func (g *Grid) Stamp(centerX, centerY int, m Material, r *rng.RNG) int {
	n := 0
	for i := -BrushRadius; i <= BrushRadius; i++ {
		for j := -BrushRadius; j <= BrushRadius; j++ {
			if i*i+j*j > BrushRadius*BrushRadius {
				continue
			}
			row, col := centerY+i, centerX+j
			if !g.InBounds(row, col) {
				continue
			}
			g.Cells[g.Index(row, col)] = g.particle(m, r)
			n++
		}
	}
	return n
}

func (g *Grid) particle(m Material, r *rng.RNG) Cell {
	if m == Empty {
		return emptyCell
	}
	base := g.Palette.Color(m)
	return Cell{
		Material: m,
		LifeTime: 1.0,
		Color: color.RGBA{
			R: jitter(base.R, r),
			G: jitter(base.G, r),
			B: jitter(base.B, r),
			A: base.A,
		},
	}
}

func jitter(v uint8, r *rng.RNG) uint8 {
	n := int(v) + r.Between(-colorJitter, colorJitter)
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return uint8(n)
}
