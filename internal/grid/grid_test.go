package grid

import (
	"testing"

	"github.com/blockbyte/engine/internal/rng"
)

func put(g *Grid, row, col int, m Material) {
	g.Set(row, col, Cell{Material: m, LifeTime: 1, Color: g.Palette.Color(m)})
}

func TestSandFreeFall(t *testing.T) {
	g := New(10, 5)
	r := rng.New(1)
	put(g, 0, 2, Sand)

	for i := 0; i < 20; i++ {
		g.Step(r)
		if got := g.Count(Sand); got != 1 {
			t.Fatalf("step %d: %d sand cells, want 1", i, got)
		}
	}
	if g.At(9, 2).Material != Sand {
		t.Fatalf("sand did not land at (9,2)")
	}
}

func TestSandFallsOneRowPerStep(t *testing.T) {
	g := New(10, 5)
	put(g, 0, 2, Sand)
	g.Step(rng.New(1))
	if g.At(1, 2).Material != Sand || g.At(0, 2).Material != Empty {
		t.Fatal("sand should fall exactly one row per step")
	}
}

func TestSandRestsOnSupportedStone(t *testing.T) {
	g := New(5, 5)
	put(g, 3, 1, Stone)
	put(g, 3, 2, Stone)
	put(g, 3, 3, Stone)
	put(g, 2, 2, Sand)

	r := rng.New(9)
	for i := 0; i < 10; i++ {
		g.Step(r)
		if g.At(2, 2).Material != Sand {
			t.Fatalf("step %d: supported sand moved", i)
		}
	}
}

func TestSandSlidesOffSingleStone(t *testing.T) {
	g := New(5, 5)
	put(g, 3, 2, Stone)
	put(g, 2, 2, Sand)
	g.Step(rng.New(3))

	if g.At(2, 2).Material == Sand {
		t.Fatal("sand with free diagonals should slide")
	}
	if g.At(3, 1).Material != Sand && g.At(3, 3).Material != Sand {
		t.Fatal("sand did not land on a diagonal")
	}
}

func TestSandAtEdgeStaysInside(t *testing.T) {
	g := New(3, 3)
	put(g, 2, 0, Stone)
	put(g, 2, 1, Stone)
	put(g, 1, 0, Sand)

	r := rng.New(5)
	for i := 0; i < 20; i++ {
		g.Step(r)
	}
	if g.At(1, 0).Material != Sand {
		t.Fatal("edge sand moved off its support")
	}
	if g.Count(Sand) != 1 {
		t.Fatalf("sand count = %d", g.Count(Sand))
	}
}

func TestWaterMovesAtMostOncePerStep(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := New(1, 8)
		put(g, 0, 0, Water)
		g.Step(rng.New(seed))

		col := -1
		for c := 0; c < g.Cols; c++ {
			if g.At(0, c).Material == Water {
				col = c
			}
		}
		if col != 0 && col != 1 {
			t.Fatalf("seed %d: water ended at col %d after one step", seed, col)
		}
	}
}

func TestWaterFlowsSideways(t *testing.T) {
	g := New(1, 9)
	put(g, 0, 4, Water)
	r := rng.New(11)
	moved := false
	for i := 0; i < 10; i++ {
		g.Step(r)
		if g.At(0, 4).Material != Water {
			moved = true
		}
		if g.Count(Water) != 1 {
			t.Fatalf("water count = %d", g.Count(Water))
		}
	}
	if !moved {
		t.Fatal("water on the bottom row never flowed sideways")
	}
}

func TestMassConservation(t *testing.T) {
	g := New(64, 64)
	r := rng.New(2024)
	g.Stamp(20, 10, Sand, r)
	g.Stamp(40, 10, Water, r)
	g.Stamp(32, 40, Stone, r)
	sand, water, stone := g.Count(Sand), g.Count(Water), g.Count(Stone)

	for i := 0; i < 200; i++ {
		g.Step(r)
		if g.Count(Sand) != sand || g.Count(Water) != water || g.Count(Stone) != stone {
			t.Fatalf("step %d: counts %d/%d/%d, want %d/%d/%d", i,
				g.Count(Sand), g.Count(Water), g.Count(Stone), sand, water, stone)
		}
	}
}

func TestSameSeedSameEvolution(t *testing.T) {
	run := func() *Grid {
		g := New(32, 32)
		r := rng.New(77)
		g.Stamp(16, 5, Water, r)
		g.Stamp(10, 5, Sand, r)
		for i := 0; i < 50; i++ {
			g.Step(r)
		}
		return g
	}
	a, b := run(), run()
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs between runs", i)
		}
	}
}

func TestStampDisc(t *testing.T) {
	g := New(32, 32)
	r := rng.New(1)
	if n := g.Stamp(10, 10, Sand, r); n != 81 {
		t.Fatalf("Stamp wrote %d cells, want 81", n)
	}
	if g.Count(Sand) != 81 {
		t.Fatalf("sand count = %d, want 81", g.Count(Sand))
	}

	base := g.Palette.Color(Sand)
	for i := range g.Cells {
		c := g.Cells[i]
		if c.Material != Sand {
			continue
		}
		if c.LifeTime != 1 || c.Color.A != 255 {
			t.Fatalf("cell %d: lifetime=%v alpha=%d", i, c.LifeTime, c.Color.A)
		}
		if d := int(c.Color.R) - int(base.R); d < -20 || d > 20 {
			t.Fatalf("cell %d: red %d outside jitter range", i, c.Color.R)
		}
	}
	if g.At(10, 15).Material != Sand || g.At(10, 16).Material != Empty {
		t.Fatal("disc edge wrong on the x axis")
	}
	if g.At(14, 13).Material != Sand || g.At(14, 14).Material != Empty {
		t.Fatal("disc edge wrong on the diagonal")
	}

	g.Stamp(10, 10, Empty, r)
	if g.Occupied() != 0 {
		t.Fatalf("%d cells left after erasing", g.Occupied())
	}
}

func TestStampClipsAtBorder(t *testing.T) {
	g := New(8, 8)
	n := g.Stamp(0, 0, Stone, rng.New(1))
	if n == 0 || n >= 81 {
		t.Fatalf("corner stamp wrote %d cells", n)
	}
	if g.Count(Stone) != n {
		t.Fatalf("count %d != written %d", g.Count(Stone), n)
	}
}

func TestIsEmptyOutOfRange(t *testing.T) {
	g := New(4, 4)
	if g.IsEmpty(-1) || g.IsEmpty(16) {
		t.Fatal("out of range indices must not be empty")
	}
	if !g.IsEmpty(0) {
		t.Fatal("fresh cell should be empty")
	}
}

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial(" Water ")
	if err != nil || m != Water {
		t.Fatalf("ParseMaterial = %v, %v", m, err)
	}
	if _, err := ParseMaterial("lava"); err == nil {
		t.Fatal("expected error for unknown material")
	}
}

func TestFillRGBA(t *testing.T) {
	g := New(2, 2)
	put(g, 1, 1, Stone)
	buf := make([]byte, 16)
	g.FillRGBA(buf)
	if buf[12] != 100 || buf[15] != 255 {
		t.Fatalf("stone pixel = %v", buf[12:16])
	}
	if buf[3] != 0 {
		t.Fatal("empty pixel should be transparent")
	}
}
