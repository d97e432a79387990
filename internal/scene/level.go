package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	"github.com/blockbyte/engine/internal/level"
)

// ImportLevel loads a level file and creates one sheet entity plus one tile
// entity per placed tile. The file is parsed and the entity budget checked
// before anything is created. A sheet image that fails to load only raises
// FileError on the sheet component.
func (s *Scene) ImportLevel(path string) (ecs.EntityID, error) {
	sheet, err := level.Load(path, s.Board.Width, s.Board.Height)
	if err != nil {
		return ecs.NoEntity, err
	}
	return s.PlaceSheet(sheet, path)
}

// PlaceSheet turns an in-memory sheet into entities. source is only used
// for logging and the LevelImported event.
func (s *Scene) PlaceSheet(sheet *level.Sheet, source string) (ecs.EntityID, error) {
	need := sheet.Occupied() + 1
	if avail := s.World.Available(); need > avail {
		return ecs.NoEntity, fmt.Errorf("import level %s: %w: need %d, have %d", source, ErrBudget, need, avail)
	}

	id := s.World.NewEntity()
	ss := ecs.Assign[component.SpriteSheet](s.World, id)
	ss.Sheet = sheet
	ss.Imported = true
	if err := s.LoadSheetImage(ss, sheet.ImagePath); err != nil {
		s.log.Warn("sprite sheet image unavailable", zap.String("path", sheet.ImagePath), zap.Error(err))
	}

	tiles := 0
	for row := 0; row < sheet.Height; row++ {
		for col := 0; col < sheet.Width; col++ {
			tileID := sheet.Tile(col, row)
			if tileID == level.NoTile {
				continue
			}
			if _, err := s.CreateTile(col, row, tileID); err != nil {
				return id, fmt.Errorf("import level %s: %w", source, err)
			}
			tiles++
		}
	}

	if s.Bus != nil {
		event.Emit(s.Bus, event.LevelImported{Path: source, Tiles: tiles})
	}
	s.log.Info("level imported", zap.String("path", source), zap.Int("tiles", tiles))
	return id, nil
}

// LoadSheetImage swaps the sheet's image for the one at path, releasing
// the previous reference. On failure FileError is raised and the old image
// is kept.
func (s *Scene) LoadSheetImage(ss *component.SpriteSheet, path string) error {
	img, err := s.Assets.Load(path)
	if err != nil {
		ss.FileError = true
		return err
	}
	ss.Release()
	ss.Image = img
	ss.FileError = false
	ss.OnRelease = func() { s.Assets.Release(path) }
	return nil
}

// ExportLevel writes the sheet carried by sheetEntity to path.
func (s *Scene) ExportLevel(sheetEntity ecs.EntityID, path string) error {
	ss := ecs.Get[component.SpriteSheet](s.World, sheetEntity)
	if ss == nil || ss.Sheet == nil {
		return fmt.Errorf("export level %s: entity has no sprite sheet", path)
	}
	if err := level.Save(path, ss.Sheet); err != nil {
		return err
	}
	s.log.Info("level exported", zap.String("path", path), zap.Int("tiles", ss.Sheet.Occupied()))
	return nil
}
