// Package render draws a world. ANSI prints particle grids as styled text
// for headless runs; the ebiten painter lives behind the ebiten build tag.
package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/grid"
)

var glyphs = [...]rune{
	grid.Empty: ' ',
	grid.Sand:  ':',
	grid.Water: '~',
	grid.Stone: '#',
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	frameStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// ANSI renders every particle grid in the world as text, one glyph per
// Block x Block cells. With Out set, Render writes a snapshot every Every
// frames; otherwise it only counts frames.
type ANSI struct {
	Block int
	Every int
	Out   io.Writer

	frames int
	styles map[color.RGBA]lipgloss.Style
}

func NewANSI(block int) *ANSI {
	if block <= 0 {
		block = 1
	}
	return &ANSI{Block: block, styles: make(map[color.RGBA]lipgloss.Style)}
}

func (a *ANSI) Render(w *ecs.World) {
	a.frames++
	if a.Out == nil || a.Every <= 0 || a.frames%a.Every != 0 {
		return
	}
	fmt.Fprintln(a.Out, a.Snapshot(w))
}

// Frames returns how many times Render ran.
func (a *ANSI) Frames() int { return a.frames }

// Snapshot returns the current state of every grid in the world.
func (a *ANSI) Snapshot(w *ecs.World) string {
	var parts []string
	ecs.Each1(w, func(id ecs.EntityID, gs *component.GridSimulation) {
		if gs.Grid == nil {
			return
		}
		parts = append(parts, a.grid(id, gs))
	})
	if len(parts) == 0 {
		return statStyle.Render(fmt.Sprintf("%d entities, no particle grid", w.Len()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *ANSI) grid(id ecs.EntityID, gs *component.GridSimulation) string {
	g := gs.Grid
	title := titleStyle.Render(fmt.Sprintf("grid %d:%d  %dx%d", id.Index(), id.Version(), g.Rows, g.Cols))
	stats := statStyle.Render(fmt.Sprintf("sand %d  water %d  stone %d",
		g.Count(grid.Sand), g.Count(grid.Water), g.Count(grid.Stone)))
	if gs.Paused {
		stats += statStyle.Render("  (paused)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, frameStyle.Render(a.cells(g)), stats)
}

// cells groups adjacent glyphs of the same colour into one styled run.
func (a *ANSI) cells(g *grid.Grid) string {
	var sb strings.Builder
	for row := 0; row < g.Rows; row += a.Block {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runColor color.RGBA
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(a.style(runColor).Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < g.Cols; col += a.Block {
			m := a.dominant(g, row, col)
			c := g.Palette.Color(m)
			if c != runColor {
				flush()
				runColor = c
			}
			run.WriteRune(glyphs[m])
		}
		flush()
	}
	return sb.String()
}

// dominant returns the most common non-empty material in a block, or
// Empty when the block is empty.
func (a *ANSI) dominant(g *grid.Grid, row, col int) grid.Material {
	var counts [len(glyphs)]int
	for r := row; r < row+a.Block && r < g.Rows; r++ {
		for c := col; c < col+a.Block && c < g.Cols; c++ {
			counts[g.At(r, c).Material]++
		}
	}
	best := grid.Empty
	for m := grid.Sand; int(m) < len(counts); m++ {
		if counts[m] > counts[best] || (best == grid.Empty && counts[m] > 0) {
			best = m
		}
	}
	return best
}

func (a *ANSI) style(c color.RGBA) lipgloss.Style {
	if s, ok := a.styles[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	a.styles[c] = s
	return s
}
