//go:build ebiten

package preview

import (
	"errors"
	"image"

	"lifereel/internal/core"
	"lifereel/internal/life"
	"lifereel/internal/render"
	"lifereel/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 150

// Game adapts a simulation session to the ebiten.Game interface.
type Game struct {
	s       *session
	pacer   *core.FixedStep
	hud     *ui.HUD
	overlay *ui.Overlay

	grid       *life.Grid
	generation int
	frame      *ebiten.Image
	buf        []byte
	dirty      bool

	paused   bool
	tickOnce bool
	err      error
}

func newGame(s *session) *Game {
	b := s.renderer.Bounds()
	return &Game{
		s:          s,
		pacer:      core.NewFixedStep(s.fps),
		hud:        ui.NewHUD(hudWidth),
		overlay:    ui.NewOverlay(s.initial.Size(), s.renderer.Scale()),
		grid:       s.initial,
		generation: 1,
		frame:      ebiten.NewImage(b.Dx(), b.Dy()),
		buf:        make([]byte, 4*b.Dx()*b.Dy()),
		dirty:      true,
	}
}

// Reset rewinds to the initial grid.
func (g *Game) Reset() {
	g.grid = g.s.initial
	g.generation = 1
	g.dirty = true
	g.tickOnce = false
}

// Update handles input and advances one generation per frame interval. The
// run stops advancing after the configured number of rounds.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.overlay.Toggle()
	}

	due := g.pacer.ShouldStep()
	if g.generation < g.s.rounds && ((!g.paused && due) || g.tickOnce) {
		next, err := g.s.engine.Next(g.grid)
		if err != nil {
			return err
		}
		g.grid = next
		g.generation++
		g.dirty = true
	}
	g.tickOnce = false
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		frame, err := g.s.renderer.Render(g.grid)
		if err != nil {
			g.err = err
			return
		}
		render.FillRGBA(g.buf, frame.Pix)
		g.frame.WritePixels(g.buf)
		g.dirty = false
	}
	screen.DrawImage(g.frame, nil)
	g.overlay.Draw(screen)

	b := g.s.renderer.Bounds()
	g.hud.Draw(screen, b.Dx(), b.Dy(), g.status())
}

func (g *Game) status() ui.Status {
	return ui.Status{
		Generation: g.generation,
		Rounds:     g.s.rounds,
		Alive:      g.grid.Alive(),
		Cells:      g.grid.Size().Area(),
		Paused:     g.paused,
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.s.renderer.Bounds()
	return b.Dx() + g.hud.Width(), b.Dy()
}

// Run opens a window and plays the simulation until it is closed.
func Run(opts Options) error {
	s, err := prepare(opts)
	if err != nil {
		return err
	}
	game := newGame(s)
	size := s.renderer.Bounds().Size()
	size.X += game.hud.Width()
	fitWindow(size)

	ebiten.SetWindowTitle(s.title)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// fitWindow sizes the window to the frame, shrinking it to the monitor.
func fitWindow(size image.Point) {
	mw, mh := ebiten.ScreenSizeInFullscreen()
	w, h := size.X, size.Y
	for mw > 0 && mh > 0 && (w > mw || h > mh) && w > 1 && h > 1 {
		w, h = w/2, h/2
	}
	ebiten.SetWindowSize(w, h)
}
