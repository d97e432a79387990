//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui [script.lua]",
	Short: "Open the editor window (requires -tags ebiten)",
	RunE: func(*cobra.Command, []string) error {
		return errors.New("the GUI build of blockbyte requires the ebiten build tag; " +
			"re-run with `go run -tags ebiten ./cmd/blockbyte gui` or build with `-tags ebiten`")
	},
}
