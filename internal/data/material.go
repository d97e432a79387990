package data

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blockbyte/engine/internal/grid"
)

// MaterialEntry is one row of materials.yaml.
type MaterialEntry struct {
	Name  string `yaml:"name"`
	Color [4]int `yaml:"color"` // r, g, b, a
	Note  string `yaml:"note"`
}

// MaterialTable maps material names to their base colours.
type MaterialTable struct {
	entries map[grid.Material]MaterialEntry
}

// LoadMaterialTable loads materials.yaml.
func LoadMaterialTable(path string) (*MaterialTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read material list: %w", err)
	}
	return ParseMaterialTable(raw)
}

// ParseMaterialTable decodes a material list from YAML bytes.
func ParseMaterialTable(raw []byte) (*MaterialTable, error) {
	var entries []MaterialEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse material list: %w", err)
	}
	t := &MaterialTable{entries: make(map[grid.Material]MaterialEntry, len(entries))}
	for _, e := range entries {
		m, err := grid.ParseMaterial(e.Name)
		if err != nil {
			return nil, fmt.Errorf("parse material list: %w", err)
		}
		for _, c := range e.Color {
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("parse material list: %s colour channel %d out of range", e.Name, c)
			}
		}
		t.entries[m] = e
	}
	return t, nil
}

// Palette overlays the loaded colours on grid.DefaultPalette.
func (t *MaterialTable) Palette() grid.Palette {
	p := grid.DefaultPalette
	for m, e := range t.entries {
		p[m] = color.RGBA{R: uint8(e.Color[0]), G: uint8(e.Color[1]), B: uint8(e.Color[2]), A: uint8(e.Color[3])}
	}
	return p
}

// Count returns the number of materials loaded.
func (t *MaterialTable) Count() int {
	return len(t.entries)
}
