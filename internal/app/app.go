//go:build ebiten

package app

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/editor"
	"github.com/blockbyte/engine/internal/engine"
	"github.com/blockbyte/engine/internal/grid"
	"github.com/blockbyte/engine/internal/render"
	"github.com/blockbyte/engine/internal/system"
)

// Keyboard reads player controls from ebiten. Pass it to engine.New.
type Keyboard struct{}

func (Keyboard) Poll() system.Controls {
	return system.Controls{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:  inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW),
		Quit:  inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

var brushKeys = map[ebiten.Key]grid.Material{
	ebiten.Key1: grid.Sand,
	ebiten.Key2: grid.Water,
	ebiten.Key3: grid.Stone,
	ebiten.Key0: grid.Empty,
}

// Game adapts the engine and editor to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	editor  *editor.Editor
	painter *render.Painter

	width, height int
	debug         bool
}

// New constructs a Game. debug shows the editor overlay from the start.
func New(eng *engine.Engine, ed *editor.Editor, debug bool) *Game {
	b := eng.Scene().Board
	p := render.NewPainter(b.TileSize)
	eng.SetRenderer(p)
	return &Game{
		eng:     eng,
		editor:  ed,
		painter: p,
		width:   b.Width * b.TileSize,
		height:  b.Height * b.TileSize,
		debug:   debug,
	}
}

// Update handles editor keys and mouse painting, then runs one engine frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleSelection()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.editor.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.editor.ShowColliders = !g.editor.ShowColliders
	}
	for k, m := range brushKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.editor.SetBrush(m)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.editor.Paint(float64(x), float64(y))
	}

	g.painter.ShowColliders = g.editor.ShowColliders
	if !g.eng.Frame(time.Second / time.Duration(ebiten.TPS())) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) cycleSelection() {
	ids := g.editor.Hierarchy()
	if len(ids) == 0 {
		return
	}
	cur := g.editor.Selected()
	for i, id := range ids {
		if id == cur {
			g.editor.Select(ids[(i+1)%len(ids)])
			return
		}
	}
	g.editor.Select(ids[0])
}

// Draw renders the world and, in debug mode, the editor status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.eng.World())
	if !g.debug {
		return
	}
	sel := g.editor.Selected()
	brush := "-"
	if m, ok := g.editor.Brush(); ok {
		brush = m.String()
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"tps %.0f  ticks %d  entities %d/%d  selected %d:%d  brush %s\n"+
			"tab select  1-3/0 brush  p pause  c colliders  f1 overlay  q quit",
		ebiten.ActualTPS(), g.eng.Ticks(), g.eng.World().Len(), ecs.MaxEntities,
		sel.Index(), sel.Version(), brush,
	), 4, 4)
}

// Layout returns the logical screen size: the whole board.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
