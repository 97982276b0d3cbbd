package core

import "errors"

// Size describes grid dimensions in cells or frame dimensions in pixels.
type Size struct {
	W int
	H int
}

// Area returns W*H, or zero when either axis is non-positive.
func (s Size) Area() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// Empty reports whether either axis is zero or negative.
func (s Size) Empty() bool { return s.Area() == 0 }

var (
	// ErrInputFormat marks malformed, empty or ragged input and invalid grids.
	ErrInputFormat = errors.New("input format")
	// ErrOutOfRange marks a point or neighbor lookup outside the grid.
	ErrOutOfRange = errors.New("out of range")
	// ErrRender marks degenerate frame dimensions or a grid/renderer mismatch.
	ErrRender = errors.New("render")
	// ErrEncoding marks a failure of the video or still-image sink.
	ErrEncoding = errors.New("encoding")
	// ErrConfig marks invalid flags or configuration file values.
	ErrConfig = errors.New("config")
)
