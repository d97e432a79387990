// Package scene builds entities out of components and collaborators: boxes
// backed by physics bodies, sprites backed by cached textures, particle
// grids and imported tile levels. Scripts, the editor and the CLI all go
// through it so every entity is assembled the same way.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/asset"
	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	"github.com/blockbyte/engine/internal/grid"
	"github.com/blockbyte/engine/internal/level"
	"github.com/blockbyte/engine/internal/physics"
)

// ErrBudget is returned when an operation needs more entities than the
// world has left.
var ErrBudget = errors.New("entity budget exceeded")

// DefaultGridScale is the on-screen size of one particle cell in pixels.
const DefaultGridScale = 2

// GridDefaults fill in what AddGrid callers leave out.
type GridDefaults struct {
	Rows, Cols int
	Brush      grid.Material
	Scale      int // screen pixels per cell
}

// Scene bundles the world with the collaborators entity builders need.
type Scene struct {
	World   *ecs.World
	Physics physics.World
	Assets  *asset.Cache
	Bus     *event.Bus
	Board   level.Board
	Palette grid.Palette
	Grid    GridDefaults

	log *zap.Logger
}

func New(
	world *ecs.World,
	phys physics.World,
	assets *asset.Cache,
	bus *event.Bus,
	board level.Board,
	log *zap.Logger,
) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		World:   world,
		Physics: phys,
		Assets:  assets,
		Bus:     bus,
		Board:   board,
		Palette: grid.DefaultPalette,
		Grid: GridDefaults{
			Rows:  grid.DefaultRows,
			Cols:  grid.DefaultCols,
			Brush: grid.Sand,
			Scale: DefaultGridScale,
		},
		log: log,
	}
}

// ToUnits converts screen pixels to board units.
func (s *Scene) ToUnits(px float64) float64 {
	if s.Board.TileSize <= 0 {
		return px
	}
	return px / float64(s.Board.TileSize)
}

// ToPixels converts board units to screen pixels.
func (s *Scene) ToPixels(units float64) float64 {
	return units * float64(s.Board.TileSize)
}

// NewEntity creates an entity with a Transform at the given pixel position.
func (s *Scene) NewEntity(x, y float64) (ecs.EntityID, error) {
	id := s.World.NewEntity()
	if id == ecs.NoEntity {
		return ecs.NoEntity, ErrBudget
	}
	t := ecs.Assign[component.Transform](s.World, id)
	t.X, t.Y = x, y
	return id, nil
}

// SetTransform moves an entity to a pixel position, teleporting its body
// along with it. Returns false when the entity has no Transform.
func (s *Scene) SetTransform(id ecs.EntityID, x, y float64) bool {
	t := ecs.Get[component.Transform](s.World, id)
	if t == nil {
		return false
	}
	t.X, t.Y = x, y
	if c := ecs.Get[component.Collider](s.World, id); c != nil {
		s.Physics.SetPosition(c.Body, physics.Vec2{X: s.ToUnits(x), Y: s.ToUnits(y)})
	}
	return true
}

// AddBox attaches a box collider. x and y are in pixels, w and h in board
// units. A previous collider on the entity is replaced and its body freed.
func (s *Scene) AddBox(id ecs.EntityID, x, y, w, h float64, static, trigger bool) *component.Collider {
	c := ecs.Assign[component.Collider](s.World, id)
	if c == nil {
		return nil
	}
	body := s.Physics.CreateBody(physics.BodyDef{
		Position: physics.Vec2{X: s.ToUnits(x), Y: s.ToUnits(y)},
		Size:     physics.Vec2{X: w, Y: h},
		Static:   static,
		Trigger:  trigger,
		Owner:    uint64(id),
	})
	c.Body = body
	c.Width, c.Height = w, h
	c.Static = static
	c.IsTrigger = trigger
	c.OnRelease = func() { s.Physics.DestroyBody(body) }
	if trigger {
		c.OnTrigger = func(self, other ecs.EntityID) {
			s.log.Info("trigger entered", zap.Uint64("trigger", uint64(self)), zap.Uint64("other", uint64(other)))
		}
	}
	return c
}

// AddSprite attaches a sprite whose texture comes from the asset cache.
// Nothing is attached when the image cannot be loaded.
func (s *Scene) AddSprite(id ecs.EntityID, path string, w, h float64) (*component.Sprite, error) {
	if !s.World.IsValid(id) {
		return nil, fmt.Errorf("add sprite %s: stale entity", path)
	}
	img, err := s.Assets.Load(path)
	if err != nil {
		return nil, fmt.Errorf("add sprite: %w", err)
	}
	sp := ecs.Assign[component.Sprite](s.World, id)
	sp.Path = path
	sp.Width, sp.Height = w, h
	sp.Texture = img
	sp.OnRelease = func() { s.Assets.Release(path) }
	return sp, nil
}

// AddInput makes the entity player-controlled with the standard tuning.
func (s *Scene) AddInput(id ecs.EntityID) *component.Input {
	in := ecs.Assign[component.Input](s.World, id)
	if in == nil {
		return nil
	}
	in.Defaults()
	return in
}

// AddGrid attaches a rows x cols particle field using the scene palette.
// Non-positive dimensions take the scene's grid defaults.
func (s *Scene) AddGrid(id ecs.EntityID, rows, cols int) *component.GridSimulation {
	if rows <= 0 {
		rows = s.Grid.Rows
	}
	if cols <= 0 {
		cols = s.Grid.Cols
	}
	gs := ecs.Assign[component.GridSimulation](s.World, id)
	if gs == nil {
		return nil
	}
	gs.Grid = grid.New(rows, cols)
	gs.Grid.Palette = s.Palette
	gs.Grid.Brush = s.Grid.Brush
	gs.Scale = s.Grid.Scale
	if gs.Scale <= 0 {
		gs.Scale = DefaultGridScale
	}
	return gs
}

// CreateTile spawns the entity for one placed tile: a parented transform
// at the cell's pixel position and a static 1x1 collider.
func (s *Scene) CreateTile(col, row, tileID int) (ecs.EntityID, error) {
	x := s.ToPixels(float64(col))
	y := s.ToPixels(float64(row))
	id, err := s.NewEntity(x, y)
	if err != nil {
		return ecs.NoEntity, err
	}
	ecs.Get[component.Transform](s.World, id).HasParent = true
	tile := ecs.Assign[component.Tile](s.World, id)
	tile.ID, tile.Col, tile.Row = tileID, col, row
	s.AddBox(id, x, y, 1, 1, true, false)
	return id, nil
}
