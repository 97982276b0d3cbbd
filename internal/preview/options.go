// Package preview plays a simulation live in a window. The window needs the
// ebiten build tag; headless builds return ErrUnavailable.
package preview

import (
	"errors"

	"lifereel/internal/app"
	"lifereel/internal/life"
	"lifereel/internal/render"
)

// ErrUnavailable is returned by Run in builds without the ebiten tag.
var ErrUnavailable = errors.New("preview requires building with the 'ebiten' tag")

// Options selects what to preview.
type Options struct {
	Config app.Config
}

// session holds everything a preview needs, prepared before any window
// opens so configuration problems surface in every build.
type session struct {
	initial  *life.Grid
	engine   life.Engine
	renderer *render.Renderer
	rounds   int
	fps      int
	title    string
}

func prepare(opts Options) (*session, error) {
	cfg := opts.Config
	if err := cfg.ValidateSimulation(); err != nil {
		return nil, err
	}
	initial, err := life.ReadFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(initial.Size(), render.Options{
		PixelsPerCell: cfg.PixelsPerCell,
		Watermark:     cfg.Watermark,
	})
	if err != nil {
		return nil, err
	}
	return &session{
		initial:  initial,
		engine:   life.Engine{Workers: cfg.Workers},
		renderer: renderer,
		rounds:   cfg.Rounds,
		fps:      cfg.FPS,
		title:    "lifereel: " + cfg.Input,
	}, nil
}
