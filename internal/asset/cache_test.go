package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if filepath.Ext(path) == ".bmp" {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoadCachesAndReleases(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "player.bmp"), 16, 8)
	c := NewCache(dir, zaptest.NewLogger(t))

	a, err := c.Load("player.bmp")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Bounds().Dx() != 16 || a.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v", a.Bounds())
	}
	b, err := c.Load("player.bmp")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || c.Len() != 1 {
		t.Fatal("second Load did not hit the cache")
	}

	c.Release("player.bmp")
	if c.Len() != 1 {
		t.Fatal("evicted while still referenced")
	}
	c.Release("player.bmp")
	if c.Len() != 0 {
		t.Fatal("not evicted after last release")
	}
}

func TestLoadPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.png")
	writeImage(t, path, 32, 32)
	c := NewCache("", nil)
	img, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 255 {
		t.Fatalf("pixel (0,0) red = %d", r>>8)
	}
}

func TestLoadMissing(t *testing.T) {
	c := NewCache(t.TempDir(), nil)
	if _, err := c.Load("nope.bmp"); err == nil {
		t.Fatal("expected error")
	}
	c.Release("nope.bmp")
}
