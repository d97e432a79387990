package grid

import (
	"fmt"
	"image/color"
	"strings"
)

// Material is the substance occupying a cell.
type Material uint8

const (
	Empty Material = iota
	Sand
	Water
	Stone

	materialCount
)

var materialNames = [materialCount]string{"empty", "sand", "water", "stone"}

func (m Material) String() string {
	if m < materialCount {
		return materialNames[m]
	}
	return fmt.Sprintf("material(%d)", uint8(m))
}

// ParseMaterial accepts a material name, case-insensitive.
func ParseMaterial(s string) (Material, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range materialNames {
		if name == s {
			return Material(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown material %q", s)
}

// Palette holds the base colour of every material. Brush stamps jitter
// around these.
type Palette [materialCount]color.RGBA

// DefaultPalette is used by grids created with New.
var DefaultPalette = Palette{
	Empty: {0, 0, 0, 0},
	Sand:  {190, 140, 80, 255},
	Water: {0, 110, 255, 255},
	Stone: {100, 100, 100, 255},
}

// Color returns the base colour of m, transparent for unknown materials.
func (p *Palette) Color(m Material) color.RGBA {
	if m < materialCount {
		return p[m]
	}
	return color.RGBA{}
}
