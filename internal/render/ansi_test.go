package render

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/grid"
)

func newGridWorld(t *testing.T, rows, cols int) (*ecs.World, *grid.Grid) {
	t.Helper()
	w := ecs.NewWorld(zaptest.NewLogger(t))
	id := w.NewEntity()
	gs := ecs.Assign[component.GridSimulation](w, id)
	gs.Grid = grid.New(rows, cols)
	return w, gs.Grid
}

func TestSnapshotGlyphs(t *testing.T) {
	w, g := newGridWorld(t, 4, 6)
	g.Set(3, 0, grid.Cell{Material: grid.Sand})
	g.Set(3, 1, grid.Cell{Material: grid.Water})
	g.Set(3, 2, grid.Cell{Material: grid.Stone})

	out := NewANSI(1).Snapshot(w)
	for _, want := range []string{":", "~", "#", "4x6", "sand 1  water 1  stone 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("snapshot missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshotBlocksPickDominant(t *testing.T) {
	w, g := newGridWorld(t, 4, 4)
	g.Set(0, 0, grid.Cell{Material: grid.Sand})
	g.Set(0, 1, grid.Cell{Material: grid.Water})
	g.Set(1, 1, grid.Cell{Material: grid.Water})

	a := NewANSI(2)
	if m := a.dominant(g, 0, 0); m != grid.Water {
		t.Fatalf("dominant = %v, want water", m)
	}
	if m := a.dominant(g, 2, 2); m != grid.Empty {
		t.Fatalf("dominant = %v, want empty", m)
	}
	if !strings.Contains(a.Snapshot(w), "~") {
		t.Fatal("block glyph missing")
	}
}

func TestSnapshotWithoutGrid(t *testing.T) {
	w := ecs.NewWorld(zaptest.NewLogger(t))
	w.NewEntity()
	if out := NewANSI(1).Snapshot(w); !strings.Contains(out, "no particle grid") {
		t.Fatalf("snapshot = %q", out)
	}
}

func TestRenderEvery(t *testing.T) {
	w, _ := newGridWorld(t, 2, 2)
	var buf bytes.Buffer
	a := NewANSI(1)
	a.Out = &buf
	a.Every = 3
	for i := 0; i < 7; i++ {
		a.Render(w)
	}
	if a.Frames() != 7 {
		t.Fatalf("Frames = %d", a.Frames())
	}
	if n := strings.Count(buf.String(), "2x2"); n != 2 {
		t.Fatalf("wrote %d snapshots, want 2", n)
	}
}
