// Package life implements Conway's Game of Life on a bounded grid.
//
// Grids are immutable once built: Seed, Parse, Embed, and Step each return a
// fresh Grid, so a generation is always computed from an untouched snapshot of
// the previous one. Cells outside the grid are treated as dead; there is no
// wraparound, so edge cells have five neighbors and corner cells three.
package life

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Grid is a fixed-size two-state cell matrix stored row-major.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// Hash is a content digest of a grid. Two grids with identical dimensions
// and cells always produce the same Hash.
type Hash [sha256.Size]byte

// String returns the first 12 hex characters of the digest.
func (h Hash) String() string {
	return hex.EncodeToString(h[:6])
}

func newGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, cells: make([]bool, width*height)}
}

// Empty returns an all-dead grid.
func Empty(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return newGrid(width, height), nil
}

// Seed returns a grid where each cell is independently alive with
// probability density. Density is clamped into [0, 1].
func Seed(width, height int, density float64, rng *rand.Rand) (*Grid, error) {
	g, err := Empty(width, height)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	density = max(0, min(1, density))
	for i := range g.cells {
		g.cells[i] = rng.Float64() < density
	}
	return g, nil
}

// Parse builds a grid from rows of text where '#', 'O', '*' or '1' mark a
// live cell and any other rune marks a dead one. All rows must have the
// same length.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("pattern has no rows")
	}
	width := len([]rune(rows[0]))
	g, err := Empty(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			switch r {
			case '#', 'O', '*', '1':
				g.cells[y*width+x] = true
			}
		}
	}
	return g, nil
}

// Embed places pattern into an otherwise empty width x height grid with its
// top-left corner at (x, y). The pattern must fit entirely.
func Embed(width, height int, pattern *Grid, x, y int) (*Grid, error) {
	g, err := Empty(width, height)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, fmt.Errorf("pattern is required")
	}
	if x < 0 || y < 0 || x+pattern.width > width || y+pattern.height > height {
		return nil, fmt.Errorf("pattern %dx%d at (%d,%d) does not fit in %dx%d",
			pattern.width, pattern.height, x, y, width, height)
	}
	for py := 0; py < pattern.height; py++ {
		copy(g.cells[(y+py)*width+x:], pattern.cells[py*pattern.width:(py+1)*pattern.width])
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Alive reports whether the cell at (x, y) is alive. Coordinates outside
// the grid are dead.
func (g *Grid) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.cells[y*g.width+x]
}

// Population returns the number of live cells.
func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.cells {
		if alive {
			n++
		}
	}
	return n
}

// Neighbors counts live cells among the in-bounds neighbors of (x, y).
func (g *Grid) Neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.height {
			continue
		}
		row := g.cells[ny*g.width : (ny+1)*g.width]
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.width {
				continue
			}
			if row[nx] {
				n++
			}
		}
	}
	return n
}

// Hash returns a SHA-256 digest over the dimensions and packed cell bits.
func (g *Grid) Hash() Hash {
	buf := make([]byte, 8, 8+(len(g.cells)+7)/8)
	binary.BigEndian.PutUint32(buf[0:4], uint32(g.width))
	binary.BigEndian.PutUint32(buf[4:8], uint32(g.height))
	var b byte
	for i, alive := range g.cells {
		if alive {
			b |= 1 << (i % 8)
		}
		if i%8 == 7 {
			buf = append(buf, b)
			b = 0
		}
	}
	if len(g.cells)%8 != 0 {
		buf = append(buf, b)
	}
	return sha256.Sum256(buf)
}

// equal reports whether both grids have the same dimensions and cells.
func (g *Grid) equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as rows of '#' and '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
