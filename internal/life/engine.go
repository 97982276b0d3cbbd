package life

import (
	"errors"
	"runtime"
	"sync"
)

// Rule maps a cell's current value and live-neighbor count to its next value.
func Rule(current uint8, neighbors int) uint8 {
	if current == 1 {
		if neighbors == 2 || neighbors == 3 {
			return 1
		}
		return 0
	}
	if neighbors == 3 {
		return 1
	}
	return 0
}

// Engine computes successive generations.
type Engine struct {
	// Workers bounds the goroutines used per generation. Zero or negative
	// means runtime.NumCPU().
	Workers int
}

// Next returns a new grid holding the generation after current. current is
// only read, each worker writes its own band of rows in the result.
func (e Engine) Next(current *Grid) (*Grid, error) {
	if current == nil {
		return nil, errors.New("life: nil grid")
	}
	if err := current.valid(); err != nil {
		return nil, err
	}

	next := &Grid{w: current.w, h: current.h, cells: make([]uint8, len(current.cells))}
	bands := e.bands(current.h)
	if len(bands) == 1 {
		step(current, next, 0, current.h)
		return next, nil
	}

	var wg sync.WaitGroup
	for _, b := range bands {
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			step(current, next, y0, y1)
		}(b[0], b[1])
	}
	wg.Wait()
	return next, nil
}

// bands splits rows [0, h) into at most Workers contiguous ranges.
func (e Engine) bands(h int) [][2]int {
	n := e.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > h {
		n = h
	}
	out := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		y0 := i * h / n
		y1 := (i + 1) * h / n
		if y1 > y0 {
			out = append(out, [2]int{y0, y1})
		}
	}
	return out
}

func step(cur, next *Grid, y0, y1 int) {
	w := cur.w
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			next.cells[idx] = Rule(cur.cells[idx], cur.neighbors(x, y))
		}
	}
}
