package life

import (
	"errors"
	"testing"

	"lifereel/internal/core"
)

func neighborsAt(t *testing.T, g *Grid, x, y int) int {
	t.Helper()
	n, err := g.AliveNeighbors(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCornerCellIgnoresItself(t *testing.T) {
	g := gridWith(t, 3, 3, [2]int{0, 0})

	if n := neighborsAt(t, g, 0, 0); n != 0 {
		t.Fatalf("corner neighbors=%d, expected 0", n)
	}
}

func TestClampedNeighborCounts(t *testing.T) {
	g := gridWith(t, 3, 3, [2]int{0, 0})

	// Cells whose clamped window covers (0,0).
	for _, p := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
		if n := neighborsAt(t, g, p[0], p[1]); n != 1 {
			t.Fatalf("cell %v neighbors=%d, expected 1", p, n)
		}
	}
	// The opposite corner would see (0,0) on a toroidal board.
	for _, p := range [][2]int{{2, 2}, {2, 0}, {0, 2}, {2, 1}, {1, 2}} {
		if n := neighborsAt(t, g, p[0], p[1]); n != 0 {
			t.Fatalf("cell %v neighbors=%d, expected 0", p, n)
		}
	}
}

func TestClampedCountsOnFullGrid(t *testing.T) {
	cells := make([]uint8, 9)
	for i := range cells {
		cells[i] = 1
	}
	g, err := NewGrid(3, 3, cells)
	if err != nil {
		t.Fatal(err)
	}

	expects := [3][3]int{
		{3, 5, 3},
		{5, 8, 5},
		{3, 5, 3},
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if n := neighborsAt(t, g, x, y); n != expects[y][x] {
				t.Fatalf("cell (%d,%d) neighbors=%d, expected %d", x, y, n, expects[y][x])
			}
		}
	}
}

func TestSingleColumnWindow(t *testing.T) {
	g := gridWith(t, 1, 3, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})

	for y, want := range []int{1, 2, 1} {
		if n := neighborsAt(t, g, 0, y); n != want {
			t.Fatalf("row %d neighbors=%d, expected %d", y, n, want)
		}
	}
}

func TestLookupOutOfRange(t *testing.T) {
	g := NewEmptyGrid(4, 2)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		if _, err := g.Point(p[0], p[1]); !errors.Is(err, core.ErrOutOfRange) {
			t.Fatalf("Point%v: %v", p, err)
		}
		if _, err := g.AliveNeighbors(p[0], p[1]); !errors.Is(err, core.ErrOutOfRange) {
			t.Fatalf("AliveNeighbors%v: %v", p, err)
		}
	}
}

func TestNewGridValidates(t *testing.T) {
	cases := []struct {
		w, h  int
		cells []uint8
	}{
		{0, 3, nil},
		{2, 2, []uint8{0, 1, 0}},
		{2, 1, []uint8{0, 2}},
	}
	for _, c := range cases {
		if _, err := NewGrid(c.w, c.h, c.cells); !errors.Is(err, core.ErrInputFormat) {
			t.Fatalf("NewGrid(%d, %d, %v): %v", c.w, c.h, c.cells, err)
		}
	}
}

func TestNewGridCopiesCells(t *testing.T) {
	cells := []uint8{1, 0, 0, 1}
	g, err := NewGrid(2, 2, cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[0] = 0
	v, err := g.Point(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("grid shares the caller's slice: (0,0)=%d", v)
	}
	if n := g.Alive(); n != 2 {
		t.Fatalf("alive=%d, expected 2", n)
	}
}
