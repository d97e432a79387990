// Package editor holds the state behind the in-game editor panels:
// selection, brush material, painting, sprite sheet import and level
// export. It has no drawing code; front-ends read it and feed it clicks.
package editor

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	"github.com/blockbyte/engine/internal/grid"
	"github.com/blockbyte/engine/internal/level"
	"github.com/blockbyte/engine/internal/rng"
	"github.com/blockbyte/engine/internal/scene"
)

var (
	ErrNoSelection = errors.New("no entity selected")
	ErrNoSheet     = errors.New("selected entity has no sprite sheet")
)

// Editor is driven from the loop goroutine only.
type Editor struct {
	scene    *scene.Scene
	rng      *rng.RNG
	selected ecs.EntityID

	ShowColliders bool
	ShowGrid      bool

	log *zap.Logger
}

func New(sc *scene.Scene, r *rng.RNG, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		scene:    sc,
		rng:      r,
		selected: ecs.NoEntity,
		ShowGrid: true,
		log:      log,
	}
}

// Select makes id the target of brush and property edits. NoEntity clears
// the selection; a stale handle is refused.
func (e *Editor) Select(id ecs.EntityID) bool {
	if id != ecs.NoEntity && !e.scene.World.IsValid(id) {
		return false
	}
	e.selected = id
	return true
}

// Selected returns the selection, or NoEntity once it has been destroyed.
func (e *Editor) Selected() ecs.EntityID {
	if e.selected != ecs.NoEntity && !e.scene.World.IsValid(e.selected) {
		e.selected = ecs.NoEntity
	}
	return e.selected
}

func (e *Editor) selectedGrid() (*component.GridSimulation, ecs.EntityID) {
	id := e.Selected()
	gs := ecs.Get[component.GridSimulation](e.scene.World, id)
	if gs == nil || gs.Grid == nil {
		return nil, id
	}
	return gs, id
}

// SetBrush changes the paint material of the selected grid.
func (e *Editor) SetBrush(m grid.Material) bool {
	gs, id := e.selectedGrid()
	if gs == nil {
		return false
	}
	if gs.Grid.Brush == m {
		return true
	}
	gs.Grid.Brush = m
	event.Emit(e.scene.Bus, event.BrushChanged{Grid: id, Material: m})
	return true
}

// Brush returns the selected grid's paint material.
func (e *Editor) Brush() (grid.Material, bool) {
	gs, _ := e.selectedGrid()
	if gs == nil {
		return grid.Empty, false
	}
	return gs.Grid.Brush, true
}

// TogglePause stops or resumes the selected grid's automaton.
func (e *Editor) TogglePause() bool {
	gs, _ := e.selectedGrid()
	if gs == nil {
		return false
	}
	gs.Paused = !gs.Paused
	return gs.Paused
}

// Paint applies the brush at a viewport pixel position. On a grid it
// stamps a disc of the brush material and returns the cells written; on
// an imported sprite sheet it places the selected tile (NoTile erases) and
// returns 1 when the board changed.
func (e *Editor) Paint(px, py float64) int {
	id := e.Selected()
	if id == ecs.NoEntity {
		return 0
	}
	if gs := ecs.Get[component.GridSimulation](e.scene.World, id); gs != nil && gs.Grid != nil {
		scale := gs.Scale
		if scale <= 0 {
			scale = 1
		}
		col := int(math.Floor(px / float64(scale)))
		row := int(math.Floor(py / float64(scale)))
		return gs.Grid.Stamp(col, row, gs.Grid.Brush, e.rng)
	}
	if ss := ecs.Get[component.SpriteSheet](e.scene.World, id); ss != nil && ss.Imported && ss.Sheet != nil {
		ts := e.scene.Board.TileSize
		if px < 0 || py < 0 || ts <= 0 {
			return 0
		}
		return e.placeTile(ss, int(px)/ts, int(py)/ts)
	}
	return 0
}

func (e *Editor) placeTile(ss *component.SpriteSheet, col, row int) int {
	if col >= ss.Sheet.Width || row >= ss.Sheet.Height {
		return 0
	}
	want := ss.SelectedTile
	if ss.Sheet.Tile(col, row) == want {
		return 0
	}

	existing := e.tileAt(col, row)
	switch {
	case want == level.NoTile:
		e.scene.World.DestroyEntity(existing)
	case existing != ecs.NoEntity:
		ecs.Get[component.Tile](e.scene.World, existing).ID = want
	default:
		if _, err := e.scene.CreateTile(col, row, want); err != nil {
			e.log.Warn("tile not placed", zap.Int("col", col), zap.Int("row", row), zap.Error(err))
			return 0
		}
	}
	ss.Sheet.SetTile(col, row, want)
	return 1
}

func (e *Editor) tileAt(col, row int) ecs.EntityID {
	found := ecs.NoEntity
	ecs.Each1(e.scene.World, func(id ecs.EntityID, t *component.Tile) {
		if t.Col == col && t.Row == row {
			found = id
		}
	})
	return found
}

// SelectTile picks the tile id placed by Paint on the selected sheet.
// Ids past the end of the sheet image are refused.
func (e *Editor) SelectTile(tileID int) bool {
	ss := ecs.Get[component.SpriteSheet](e.scene.World, e.Selected())
	if ss == nil || tileID < level.NoTile {
		return false
	}
	if n := tileCount(ss); n > 0 && tileID >= n {
		return false
	}
	ss.SelectedTile = tileID
	return true
}

func tileCount(ss *component.SpriteSheet) int {
	if ss.Image == nil || ss.Sheet == nil || ss.Sheet.TileSize <= 0 {
		return 0
	}
	b := ss.Image.Bounds()
	return (b.Dx() / ss.Sheet.TileSize) * (b.Dy() / ss.Sheet.TileSize)
}

// Hierarchy lists the live entities shown in the scene tree. Parented
// entities (level tiles) are left out.
func (e *Editor) Hierarchy() []ecs.EntityID {
	var out []ecs.EntityID
	v := ecs.All(e.scene.World)
	for v.Next() {
		id := v.Entity()
		if t := ecs.Get[component.Transform](e.scene.World, id); t != nil && t.HasParent {
			continue
		}
		out = append(out, id)
	}
	return out
}

// NewSheet creates an empty sprite sheet entity sized to the board and
// selects it.
func (e *Editor) NewSheet() (ecs.EntityID, error) {
	id := e.scene.World.NewEntity()
	if id == ecs.NoEntity {
		return ecs.NoEntity, scene.ErrBudget
	}
	ecs.Assign[component.SpriteSheet](e.scene.World, id)
	e.selected = id
	return id, nil
}

// ImportSheet loads a sprite sheet image into the selected sheet entity.
// A tile size that is not a number or not 8/16/32 raises SizeError; an
// image that cannot be opened raises FileError. Placed tiles survive a
// re-import.
func (e *Editor) ImportSheet(path, tileSizeText string) error {
	ss := ecs.Get[component.SpriteSheet](e.scene.World, e.Selected())
	if ss == nil {
		return ErrNoSheet
	}

	ts, err := level.ParseTileSize(tileSizeText)
	if err != nil {
		ss.SizeError = true
		ss.Imported = ss.Sheet != nil && ss.Image != nil
		return fmt.Errorf("import sheet %s: %w", path, err)
	}
	ss.SizeError = false

	if err := e.scene.LoadSheetImage(ss, path); err != nil {
		ss.Imported = ss.Sheet != nil && ss.Image != nil
		return fmt.Errorf("import sheet %s: %w", path, err)
	}

	if ss.Sheet == nil {
		b := e.scene.Board
		ss.Sheet = level.NewSheet(path, ts, b.Width, b.Height)
		ss.SelectedTile = 0
	} else {
		ss.Sheet.ImagePath = path
		ss.Sheet.TileSize = ts
	}
	ss.Imported = true
	e.log.Info("sprite sheet imported", zap.String("path", path), zap.Int("tile_size", ts),
		zap.Int("tiles", tileCount(ss)))
	return nil
}

// Export writes the selected sheet as a level file.
func (e *Editor) Export(path string) error {
	id := e.Selected()
	if id == ecs.NoEntity {
		return ErrNoSelection
	}
	return e.scene.ExportLevel(id, path)
}
