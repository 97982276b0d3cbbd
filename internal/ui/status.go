// Package ui draws the preview window chrome: a status panel and an
// optional cell grid overlay.
package ui

import "fmt"

// Status is the run state shown in the HUD panel.
type Status struct {
	Generation int
	Rounds     int
	Alive      int
	Cells      int
	Paused     bool
}

// Finished reports whether the run has reached its last generation.
func (s Status) Finished() bool { return s.Rounds > 0 && s.Generation >= s.Rounds }

// Lines formats s for the panel, one entry per text row.
func (s Status) Lines() []string {
	state := "running"
	switch {
	case s.Finished():
		state = "done"
	case s.Paused:
		state = "paused"
	}
	density := 0.0
	if s.Cells > 0 {
		density = 100 * float64(s.Alive) / float64(s.Cells)
	}
	return []string{
		fmt.Sprintf("gen %d/%d", s.Generation, s.Rounds),
		fmt.Sprintf("alive %d", s.Alive),
		fmt.Sprintf("density %.1f%%", density),
		state,
	}
}

// Hints lists the preview key bindings.
func Hints() []string {
	return []string{
		"space pause",
		"n     step",
		"r     restart",
		"g     grid",
		"q     quit",
	}
}
