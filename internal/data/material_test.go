package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blockbyte/engine/internal/grid"
)

func TestLoadMaterialTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	src := `
- name: sand
  color: [200, 150, 90, 255]
- name: water
  color: [10, 20, 30, 128]
  note: murky
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadMaterialTable(path)
	if err != nil {
		t.Fatalf("LoadMaterialTable: %v", err)
	}
	if tbl.Count() != 2 {
		t.Fatalf("Count = %d, want 2", tbl.Count())
	}
	p := tbl.Palette()
	if c := p.Color(grid.Sand); c.R != 200 || c.G != 150 {
		t.Fatalf("sand = %+v", c)
	}
	if c := p.Color(grid.Water); c.A != 128 {
		t.Fatalf("water alpha = %d", c.A)
	}
	if p.Color(grid.Stone) != grid.DefaultPalette.Color(grid.Stone) {
		t.Fatal("stone should keep the default colour")
	}
}

func TestParseMaterialTableErrors(t *testing.T) {
	cases := map[string]string{
		"unknown name": "- name: lava\n  color: [1, 2, 3, 4]\n",
		"bad channel":  "- name: sand\n  color: [1, 2, 300, 4]\n",
		"not a list":   "sand: 1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseMaterialTable([]byte(src)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMaterialTableMissing(t *testing.T) {
	if _, err := LoadMaterialTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
