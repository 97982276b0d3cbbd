package life

import (
	"fmt"

	"lifereel/internal/core"
)

// Grid is one immutable generation of the board: W columns by H rows of 0/1
// cells stored row-major.
type Grid struct {
	w, h  int
	cells []uint8
}

// NewGrid builds a grid from row-major cells. The slice is copied so the
// caller keeps no handle on the generation.
func NewGrid(w, h int, cells []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", core.ErrInputFormat, w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %dx%d grid needs %d cells, got %d", core.ErrInputFormat, w, h, w*h, len(cells))
	}
	for i, c := range cells {
		if c > 1 {
			return nil, fmt.Errorf("%w: cell (%d,%d) has value %d", core.ErrInputFormat, i%w, i/w, c)
		}
	}
	return &Grid{w: w, h: h, cells: append([]uint8(nil), cells...)}, nil
}

// NewEmptyGrid returns an all-dead grid. Non-positive dimensions are raised
// to one.
func NewEmptyGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, cells: make([]uint8, w*h)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Cells returns a copy of the row-major cell values.
func (g *Grid) Cells() []uint8 { return append([]uint8(nil), g.cells...) }

// Point returns the value of cell (x, y).
func (g *Grid) Point(x, y int) (uint8, error) {
	if !g.inside(x, y) {
		return 0, g.rangeError(x, y)
	}
	return g.cells[y*g.w+x], nil
}

// AliveNeighbors counts live cells in the clamped 3x3 window around (x, y),
// excluding (x, y) itself.
//
// An out-of-range neighbor column or row is replaced by the cell's own
// column or row, so the window shrinks against the border instead of
// wrapping around.
func (g *Grid) AliveNeighbors(x, y int) (int, error) {
	if !g.inside(x, y) {
		return 0, g.rangeError(x, y)
	}
	return g.neighbors(x, y), nil
}

// Alive returns the population of the generation.
func (g *Grid) Alive() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Equal reports whether both grids have identical dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid in the input text format.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.w+1)*g.h)
	for y := 0; y < g.h; y++ {
		for _, c := range g.cells[y*g.w : (y+1)*g.w] {
			buf = append(buf, '0'+c)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (g *Grid) neighbors(x, y int) int {
	left := x - 1
	if left < 0 {
		left = x
	}
	right := x + 1
	if right >= g.w {
		right = x
	}
	up := y - 1
	if up < 0 {
		up = y
	}
	down := y + 1
	if down >= g.h {
		down = y
	}

	alive := 0
	for ny := up; ny <= down; ny++ {
		row := g.cells[ny*g.w : (ny+1)*g.w]
		for nx := left; nx <= right; nx++ {
			if nx == x && ny == y {
				continue
			}
			alive += int(row[nx])
		}
	}
	return alive
}

func (g *Grid) valid() error {
	if g.w <= 0 || g.h <= 0 || len(g.cells) != g.w*g.h {
		return fmt.Errorf("%w: corrupt %dx%d grid with %d cells", core.ErrInputFormat, g.w, g.h, len(g.cells))
	}
	return nil
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) rangeError(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d grid", core.ErrOutOfRange, x, y, g.w, g.h)
}
