// Package level reads and writes the flat tile-id level format:
//
//	line 1    sprite sheet image path
//	line 2    source tile size in pixels (8, 16 or 32)
//	line 3..  one board row per line, space-separated tile ids, -1 = none
package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// NoTile marks an unoccupied board cell.
const NoTile = -1

var (
	ErrTileSize = errors.New("unsupported tile size")
	ErrFormat   = errors.New("malformed level")
)

// ValidTileSize reports whether n is a sheet tile size the editor accepts.
func ValidTileSize(n int) bool {
	return n == 8 || n == 16 || n == 32
}

// ParseTileSize parses the tile size field as typed by a user or read from
// line 2 of a level file.
func ParseTileSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTileSize, s)
	}
	if !ValidTileSize(n) {
		return 0, fmt.Errorf("%w: %d", ErrTileSize, n)
	}
	return n, nil
}

// Board is the size and scale of the game area.
type Board struct {
	TileSize int // screen pixels per board unit
	Width    int // in tiles
	Height   int
}

// Sheet is a sprite sheet placed on a board: one tile id per board cell.
type Sheet struct {
	ImagePath string
	TileSize  int
	Width     int
	Height    int
	Tiles     []int
}

// NewSheet returns a sheet with every cell set to NoTile.
func NewSheet(imagePath string, tileSize, width, height int) *Sheet {
	s := &Sheet{
		ImagePath: imagePath,
		TileSize:  tileSize,
		Width:     width,
		Height:    height,
		Tiles:     make([]int, width*height),
	}
	for i := range s.Tiles {
		s.Tiles[i] = NoTile
	}
	return s
}

func (s *Sheet) inBounds(col, row int) bool {
	return col >= 0 && col < s.Width && row >= 0 && row < s.Height
}

// Tile returns the id at (col, row), NoTile outside the board.
func (s *Sheet) Tile(col, row int) int {
	if !s.inBounds(col, row) {
		return NoTile
	}
	return s.Tiles[row*s.Width+col]
}

// SetTile stores id at (col, row). Out-of-board writes are ignored.
func (s *Sheet) SetTile(col, row, id int) {
	if !s.inBounds(col, row) {
		return
	}
	s.Tiles[row*s.Width+col] = id
}

// Occupied returns the number of cells holding a tile.
func (s *Sheet) Occupied() int {
	n := 0
	for _, id := range s.Tiles {
		if id != NoTile {
			n++
		}
	}
	return n
}

// Read parses a level for a width x height board. Ids beyond the board are
// dropped; missing rows and columns stay NoTile.
func Read(r io.Reader, width, height int) (*Sheet, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
		return nil, fmt.Errorf("%w: missing image path", ErrFormat)
	}
	imagePath := strings.TrimSpace(sc.Text())
	if imagePath == "" {
		return nil, fmt.Errorf("%w: empty image path", ErrFormat)
	}

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing tile size", ErrFormat)
	}
	tileSize, err := ParseTileSize(sc.Text())
	if err != nil {
		return nil, err
	}

	s := NewSheet(imagePath, tileSize, width, height)
	for row := 0; sc.Scan(); row++ {
		for col, field := range strings.Fields(sc.Text()) {
			id, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %q", ErrFormat, row, col, field)
			}
			if id < NoTile {
				return nil, fmt.Errorf("%w: row %d col %d: negative id %d", ErrFormat, row, col, id)
			}
			s.SetTile(col, row, id)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return s, nil
}

// Write emits s in the level format, every board cell included.
func Write(w io.Writer, s *Sheet) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d\n", s.ImagePath, s.TileSize)
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			bw.WriteString(strconv.Itoa(s.Tile(col, row)))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	return nil
}

// Load reads the level file at path.
func Load(path string, width, height int) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", path, err)
	}
	defer f.Close()
	s, err := Read(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, replacing any existing file.
func Save(path string, s *Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create level %s: %w", path, err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close level %s: %w", path, err)
	}
	return nil
}
