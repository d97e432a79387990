//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/blockbyte/engine/internal/app"
	"github.com/blockbyte/engine/internal/editor"
)

var guiCmd = &cobra.Command{
	Use:   "gui [script.lua]",
	Short: "Open the editor window",
	Long: `Open a window on the scene with the editor attached.

Controls:
  A/D, arrows  - Move the player
  Space/W      - Jump
  Mouse left   - Paint the selected grid or sheet
  Tab          - Cycle selection
  1 2 3 0      - Sand, water, stone, eraser
  P            - Pause the selected grid
  C            - Collider outlines
  F1           - Editor overlay
  Q/Esc        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGUI,
}

func runGUI(_ *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	script := ""
	if len(args) == 1 {
		script = args[0]
	}
	eng, lua, err := newSession(cfg, app.Keyboard{}, script, log)
	if err != nil {
		return err
	}
	defer lua.Close()

	ed := editor.New(eng.Scene(), eng.RNG(), log)
	ed.ShowColliders = cfg.Window.Debug
	if ids := ed.Hierarchy(); len(ids) > 0 {
		ed.Select(ids[0])
	}
	game := app.New(eng, ed, cfg.Window.Debug)

	b := cfg.Board
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Engine.FrameRate)
	ebiten.SetWindowSize(b.Width*b.TileSize, b.Height*b.TileSize)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
