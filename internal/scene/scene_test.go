package scene

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/image/bmp"

	"github.com/blockbyte/engine/internal/asset"
	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	"github.com/blockbyte/engine/internal/level"
	"github.com/blockbyte/engine/internal/physics"
)

func newTestScene(t *testing.T, dir string) (*Scene, *physics.Space) {
	t.Helper()
	log := zaptest.NewLogger(t)
	phys := physics.NewSpace(physics.Vec2{Y: 4.4})
	s := New(ecs.NewWorld(log), phys, asset.NewCache(dir, log), event.NewBus(),
		level.Board{TileSize: 64, Width: 20, Height: 12}, log)
	return s, phys
}

func writeSheetImage(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := bmp.Encode(f, image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
		t.Fatal(err)
	}
}

func writeLevel(t *testing.T, dir string, tiles map[[2]int]int) string {
	t.Helper()
	s := level.NewSheet("sheet.bmp", 16, 20, 12)
	for pos, id := range tiles {
		s.SetTile(pos[0], pos[1], id)
	}
	path := filepath.Join(dir, "level.txt")
	if err := level.Save(path, s); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportLevel(t *testing.T) {
	dir := t.TempDir()
	writeSheetImage(t, filepath.Join(dir, "sheet.bmp"))
	path := writeLevel(t, dir, map[[2]int]int{{2, 1}: 3, {0, 11}: 0, {19, 11}: 7})
	s, phys := newTestScene(t, dir)

	var imported []event.LevelImported
	event.Subscribe(s.Bus, func(ev event.LevelImported) { imported = append(imported, ev) })

	sheetID, err := s.ImportLevel(path)
	if err != nil {
		t.Fatalf("ImportLevel: %v", err)
	}
	ss := ecs.Get[component.SpriteSheet](s.World, sheetID)
	if ss == nil || !ss.Imported || ss.FileError || ss.Image == nil {
		t.Fatalf("sheet component = %+v", ss)
	}
	if ss.Columns() != 4 {
		t.Fatalf("Columns = %d, want 4", ss.Columns())
	}
	if s.World.Len() != 4 || phys.Len() != 3 {
		t.Fatalf("entities=%d bodies=%d", s.World.Len(), phys.Len())
	}

	found := false
	ecs.Each3(s.World, func(_ ecs.EntityID, tr *component.Transform, tile *component.Tile, c *component.Collider) {
		if !tr.HasParent || !c.Static || c.IsTrigger {
			t.Fatalf("tile %+v not a parented static box", tile)
		}
		if tile.Col == 2 && tile.Row == 1 {
			found = tile.ID == 3 && tr.X == 128 && tr.Y == 64
			p, _ := phys.Position(c.Body)
			if p.X != 2 || p.Y != 1 {
				t.Fatalf("body at %+v, want (2,1)", p)
			}
		}
	})
	if !found {
		t.Fatal("tile 3 at (2,1) missing or misplaced")
	}

	s.Bus.Swap()
	s.Bus.Dispatch()
	if len(imported) != 1 || imported[0].Tiles != 3 {
		t.Fatalf("LevelImported events = %+v", imported)
	}
}

func TestImportLevelMissingImage(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, map[[2]int]int{{1, 1}: 1})
	s, _ := newTestScene(t, dir)

	id, err := s.ImportLevel(path)
	if err != nil {
		t.Fatalf("ImportLevel: %v", err)
	}
	if ss := ecs.Get[component.SpriteSheet](s.World, id); !ss.FileError {
		t.Fatal("FileError not raised")
	}
	if s.World.Len() != 2 {
		t.Fatalf("entities = %d, want 2", s.World.Len())
	}
}

func TestImportLevelMissingFile(t *testing.T) {
	s, _ := newTestScene(t, t.TempDir())
	if _, err := s.ImportLevel("does-not-exist.txt"); err == nil {
		t.Fatal("expected error")
	}
	if s.World.Len() != 0 {
		t.Fatal("entities created for a missing level")
	}
}

func TestImportLevelOverBudget(t *testing.T) {
	dir := t.TempDir()
	tiles := map[[2]int]int{}
	for row := 0; row < 12; row++ {
		for col := 0; col < 20; col++ {
			tiles[[2]int{col, row}] = 1
		}
	}
	path := writeLevel(t, dir, tiles)
	s, phys := newTestScene(t, dir)

	_, err := s.ImportLevel(path)
	if !errors.Is(err, ErrBudget) {
		t.Fatalf("err = %v, want ErrBudget", err)
	}
	if s.World.Len() != 0 || phys.Len() != 0 {
		t.Fatal("partial import committed")
	}
}

func TestExportLevelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, map[[2]int]int{{2, 1}: 3})
	s, _ := newTestScene(t, dir)
	id, err := s.ImportLevel(path)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.txt")
	if err := s.ExportLevel(id, out); err != nil {
		t.Fatalf("ExportLevel: %v", err)
	}
	back, err := level.Load(out, 20, 12)
	if err != nil {
		t.Fatal(err)
	}
	if back.Tile(2, 1) != 3 || back.Occupied() != 1 {
		t.Fatalf("round trip lost tiles: %v", back.Tiles)
	}
	if err := s.ExportLevel(ecs.NoEntity, out); err == nil {
		t.Fatal("export of a non-sheet entity should fail")
	}
}

func TestDestroyFreesBody(t *testing.T) {
	s, phys := newTestScene(t, t.TempDir())
	id, err := s.NewEntity(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	s.AddBox(id, 64, 64, 1, 1, false, false)
	s.AddBox(id, 128, 64, 1, 1, false, false)
	if phys.Len() != 1 {
		t.Fatalf("replacing a collider leaked a body: %d", phys.Len())
	}
	s.World.DestroyEntity(id)
	if phys.Len() != 0 {
		t.Fatal("destroying the entity kept its body")
	}
}

func TestAddSprite(t *testing.T) {
	dir := t.TempDir()
	writeSheetImage(t, filepath.Join(dir, "player.bmp"))
	s, _ := newTestScene(t, dir)
	id, _ := s.NewEntity(0, 0)

	if _, err := s.AddSprite(id, "missing.bmp", 1, 1); err == nil {
		t.Fatal("expected error for missing texture")
	}
	if ecs.Has[component.Sprite](s.World, id) {
		t.Fatal("sprite attached despite load failure")
	}

	sp, err := s.AddSprite(id, "player.bmp", 1, 1)
	if err != nil || sp.Texture == nil {
		t.Fatalf("AddSprite: %v", err)
	}
	if s.Assets.Len() != 1 {
		t.Fatal("texture not cached")
	}
	s.World.DestroyEntity(id)
	if s.Assets.Len() != 0 {
		t.Fatal("texture not released with the entity")
	}
}

func TestAddGridAndInput(t *testing.T) {
	s, _ := newTestScene(t, t.TempDir())
	id, _ := s.NewEntity(0, 0)
	gs := s.AddGrid(id, 32, 48)
	if gs.Grid.Rows != 32 || gs.Grid.Cols != 48 || gs.Scale != DefaultGridScale {
		t.Fatalf("grid = %dx%d scale %d", gs.Grid.Rows, gs.Grid.Cols, gs.Scale)
	}
	in := s.AddInput(id)
	if in.Speed != component.DefaultSpeed || in.JumpSpeed != component.DefaultJumpSpeed {
		t.Fatalf("input = %+v", in)
	}
}
