// Package render turns life grids into grayscale video frames.
package render

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"lifereel/internal/core"
	"lifereel/internal/life"
)

// Options controls frame geometry and the watermark text.
type Options struct {
	PixelsPerCell int
	Watermark     string
}

// Renderer scales grids to frames and stamps a watermark built once at
// construction. It is read-only afterwards and safe for concurrent use.
type Renderer struct {
	grid     core.Size
	scale    int
	bounds   image.Rectangle
	mark     *image.Gray
	markRect image.Rectangle
}

// Scale returns the per-axis pixel scale for a pixels-per-cell budget,
// round(sqrt(pixelsPerCell)).
func Scale(pixelsPerCell int) int {
	if pixelsPerCell <= 0 {
		return 0
	}
	return int(math.Round(math.Sqrt(float64(pixelsPerCell))))
}

// New builds a renderer for grids of the given size.
func New(grid core.Size, opts Options) (*Renderer, error) {
	if grid.Empty() {
		return nil, fmt.Errorf("%w: grid is %dx%d", core.ErrRender, grid.W, grid.H)
	}
	s := Scale(opts.PixelsPerCell)
	if s <= 0 {
		return nil, fmt.Errorf("%w: %d pixels per cell gives a zero scale", core.ErrRender, opts.PixelsPerCell)
	}
	r := &Renderer{
		grid:   grid,
		scale:  s,
		bounds: image.Rect(0, 0, grid.W*s, grid.H*s),
	}
	r.markRect = watermarkRect(r.bounds)
	r.mark = newWatermark(opts.Watermark, r.markRect)
	return r, nil
}

// Bounds returns the frame rectangle in pixels.
func (r *Renderer) Bounds() image.Rectangle { return r.bounds }

// Scale returns the pixel edge length of one cell.
func (r *Renderer) Scale() int { return r.scale }

// WatermarkRect returns where the watermark is stamped; it is empty when
// the renderer has no watermark.
func (r *Renderer) WatermarkRect() image.Rectangle {
	if r.mark == nil {
		return image.Rectangle{}
	}
	return r.markRect
}

// Render draws g as a new frame: live cells white, dead cells black, each
// cell a crisp scale x scale block, with the watermark on top.
func (r *Renderer) Render(g *life.Grid) (*image.Gray, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", core.ErrRender)
	}
	size := g.Size()
	if size.Empty() {
		return nil, fmt.Errorf("%w: grid is %dx%d", core.ErrRender, size.W, size.H)
	}
	if size != r.grid {
		return nil, fmt.Errorf("%w: grid is %dx%d, renderer expects %dx%d", core.ErrRender, size.W, size.H, r.grid.W, r.grid.H)
	}

	src := image.NewGray(image.Rect(0, 0, size.W, size.H))
	fillBinaryGray(src.Pix, g.Cells())

	frame := image.NewGray(r.bounds)
	draw.NearestNeighbor.Scale(frame, r.bounds, src, src.Bounds(), draw.Src, nil)

	if r.mark != nil {
		b := r.mark.Bounds()
		stampMasked(frame.Pix, frame.Stride, r.mark.Pix, r.mark.Stride, b.Dx(), b.Dy(), r.markRect.Min.X, r.markRect.Min.Y)
	}
	return frame, nil
}
