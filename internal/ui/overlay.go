//go:build ebiten

package ui

import (
	"image/color"

	"lifereel/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// minGridScale is the smallest cell size that still leaves room for lines.
const minGridScale = 4

// Overlay draws cell boundaries on top of the rendered frame.
type Overlay struct {
	size    core.Size
	scale   int
	enabled bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a disabled overlay for a grid drawn at scale.
func NewOverlay(size core.Size, scale int) *Overlay {
	o := &Overlay{size: size, scale: scale, pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Toggle switches the grid lines on or off.
func (o *Overlay) Toggle() { o.enabled = !o.enabled }

// Draw paints one line per cell boundary when enabled.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.enabled || o.scale < minGridScale {
		return
	}
	w, h := o.size.W*o.scale, o.size.H*o.scale
	tint := color.RGBA{R: 70, G: 90, B: 140, A: 255}
	for x := 1; x < o.size.W; x++ {
		o.drawRect(screen, float64(x*o.scale), 0, 1, float64(h), tint)
	}
	for y := 1; y < o.size.H; y++ {
		o.drawRect(screen, 0, float64(y*o.scale), float64(w), 1, tint)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
