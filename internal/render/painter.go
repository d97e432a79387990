//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/level"
)

var colliderColor = color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff}

// gridImage holds the uploaded pixels of one particle grid.
type gridImage struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

func newGridImage(w, h int) *gridImage {
	return &gridImage{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Painter draws a world onto an ebiten screen. Render uploads grid pixels
// once per engine frame; Draw composes tiles, sprites, grids and collider
// outlines.
type Painter struct {
	tileSize int
	grids    map[ecs.EntityID]*gridImage
	textures map[image.Image]*ebiten.Image

	ShowColliders bool
}

func NewPainter(tileSize int) *Painter {
	return &Painter{
		tileSize: tileSize,
		grids:    make(map[ecs.EntityID]*gridImage),
		textures: make(map[image.Image]*ebiten.Image),
	}
}

// Render uploads every grid's cells and forgets grids whose entity died.
func (p *Painter) Render(w *ecs.World) {
	seen := make(map[ecs.EntityID]bool, len(p.grids))
	ecs.Each1(w, func(id ecs.EntityID, gs *component.GridSimulation) {
		if gs.Grid == nil {
			return
		}
		gi := p.grids[id]
		if gi == nil || gi.w != gs.Grid.Cols || gi.h != gs.Grid.Rows {
			gi = newGridImage(gs.Grid.Cols, gs.Grid.Rows)
			p.grids[id] = gi
		}
		gs.Grid.FillRGBA(gi.buf)
		gi.img.WritePixels(gi.buf)
		seen[id] = true
	})
	for id, gi := range p.grids {
		if !seen[id] {
			gi.img.Dispose()
			delete(p.grids, id)
		}
	}
}

func (p *Painter) texture(img image.Image) *ebiten.Image {
	if t, ok := p.textures[img]; ok {
		return t
	}
	t := ebiten.NewImageFromImage(img)
	p.textures[img] = t
	return t
}

func (p *Painter) Draw(dst *ebiten.Image, w *ecs.World) {
	ecs.Each1(w, func(_ ecs.EntityID, ss *component.SpriteSheet) {
		p.drawSheet(dst, ss)
	})

	ecs.Each2(w, func(_ ecs.EntityID, tr *component.Transform, sp *component.Sprite) {
		if sp.Texture == nil {
			return
		}
		tex := p.texture(sp.Texture)
		b := tex.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sp.Width*float64(p.tileSize)/float64(b.Dx()), sp.Height*float64(p.tileSize)/float64(b.Dy()))
		op.GeoM.Translate(tr.X, tr.Y)
		dst.DrawImage(tex, op)
	})

	ecs.Each1(w, func(id ecs.EntityID, gs *component.GridSimulation) {
		gi := p.grids[id]
		if gi == nil {
			return
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(gs.Scale), float64(gs.Scale))
		dst.DrawImage(gi.img, op)
	})

	if p.ShowColliders {
		ecs.Each2(w, func(_ ecs.EntityID, tr *component.Transform, c *component.Collider) {
			ts := float32(p.tileSize)
			vector.StrokeRect(dst, float32(tr.X), float32(tr.Y), float32(c.Width)*ts, float32(c.Height)*ts, 1, colliderColor, false)
		})
	}
}

func (p *Painter) drawSheet(dst *ebiten.Image, ss *component.SpriteSheet) {
	if !ss.Imported || ss.Image == nil || ss.Sheet == nil {
		return
	}
	cols := ss.Columns()
	src := ss.Sheet.TileSize
	if cols == 0 || src <= 0 {
		return
	}
	tex := p.texture(ss.Image)
	scale := float64(p.tileSize) / float64(src)
	for row := 0; row < ss.Sheet.Height; row++ {
		for col := 0; col < ss.Sheet.Width; col++ {
			id := ss.Sheet.Tile(col, row)
			if id == level.NoTile {
				continue
			}
			sx, sy := (id%cols)*src, (id/cols)*src
			tile := tex.SubImage(image.Rect(sx, sy, sx+src, sy+src)).(*ebiten.Image)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(float64(col*p.tileSize), float64(row*p.tileSize))
			dst.DrawImage(tile, op)
		}
	}
}
