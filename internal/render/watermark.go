package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// watermarkIntensity is the gray level the text is drawn with.
const watermarkIntensity = 150

// watermarkRect returns the rectangle the watermark occupies in a frame of
// the given bounds: 1px from the left edge, top edge on the vertical centre
// line, a fifth of the frame wide and a sixth of it tall.
func watermarkRect(frame image.Rectangle) image.Rectangle {
	w, h := frame.Dx(), frame.Dy()
	r := image.Rect(1, h/2, 1+w/5, h/2+h/6)
	return r.Intersect(frame)
}

// newWatermark rasterizes text once and resizes it to fit dst exactly. It
// returns nil when there is nothing to stamp.
func newWatermark(text string, size image.Rectangle) *image.Gray {
	if text == "" || size.Empty() {
		return nil
	}

	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	advance := d.MeasureString(text).Ceil()
	if advance <= 0 {
		return nil
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	pad := metrics.Descent.Ceil() + 1

	canvas := image.NewGray(image.Rect(0, 0, advance, ascent+2*pad))
	d.Dst = canvas
	d.Src = image.NewUniform(color.Gray{Y: watermarkIntensity})
	d.Dot = fixed.P(0, pad+ascent)
	d.DrawString(text)

	stamp := image.NewGray(image.Rect(0, 0, size.Dx(), size.Dy()))
	draw.ApproxBiLinear.Scale(stamp, stamp.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return stamp
}
