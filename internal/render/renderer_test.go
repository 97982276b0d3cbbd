package render

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifereel/internal/core"
	"lifereel/internal/life"
)

func mustGrid(t *testing.T, w, h int, cells []uint8) *life.Grid {
	t.Helper()
	g, err := life.NewGrid(w, h, cells)
	require.NoError(t, err)
	return g
}

func TestScale(t *testing.T) {
	cases := map[int]int{0: 0, -4: 0, 1: 1, 2: 1, 3: 2, 100: 10, 110: 10, 111: 11}
	for ppc, want := range cases {
		assert.Equal(t, want, Scale(ppc), "pixels per cell %d", ppc)
	}
}

func TestNewRejectsDegenerateFrames(t *testing.T) {
	_, err := New(core.Size{W: 0, H: 4}, Options{PixelsPerCell: 4})
	assert.ErrorIs(t, err, core.ErrRender)
	_, err = New(core.Size{W: 4, H: 4}, Options{PixelsPerCell: 0})
	assert.ErrorIs(t, err, core.ErrRender)
}

func TestRenderNearestNeighborBlocks(t *testing.T) {
	cells := []uint8{
		1, 0, 1,
		0, 1, 0,
	}
	g := mustGrid(t, 3, 2, cells)
	r, err := New(g.Size(), Options{PixelsPerCell: 16})
	require.NoError(t, err)
	require.Equal(t, 4, r.Scale())
	require.Equal(t, image.Rect(0, 0, 12, 8), r.Bounds())

	frame, err := r.Render(g)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			want := uint8(0)
			if cells[(y/4)*3+x/4] == 1 {
				want = 0xff
			}
			if got := frame.GrayAt(x, y).Y; got != want {
				t.Fatalf("pixel (%d,%d)=%d, expected %d", x, y, got, want)
			}
		}
	}
}

func TestWatermarkStaysInsideItsRect(t *testing.T) {
	g := life.NewEmptyGrid(50, 50)
	r, err := New(g.Size(), Options{PixelsPerCell: 16, Watermark: "LIFE"})
	require.NoError(t, err)

	rect := r.WatermarkRect()
	assert.Equal(t, image.Rect(1, 100, 41, 133), rect)

	frame, err := r.Render(g)
	require.NoError(t, err)

	stamped := 0
	b := frame.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := frame.GrayAt(x, y).Y
			if v == 0 {
				continue
			}
			if !(image.Point{X: x, Y: y}).In(rect) {
				t.Fatalf("pixel (%d,%d)=%d outside watermark rect %v", x, y, v, rect)
			}
			stamped++
		}
	}
	assert.Positive(t, stamped, "watermark left no pixels")
}

func TestWatermarkIdenticalAcrossFrames(t *testing.T) {
	a := life.NewEmptyGrid(40, 30)
	cells := make([]uint8, 40*30)
	for i := range cells {
		cells[i] = uint8(i % 2)
	}
	b := mustGrid(t, 40, 30, cells)

	r, err := New(a.Size(), Options{PixelsPerCell: 9, Watermark: "gen"})
	require.NoError(t, err)
	fa, err := r.Render(a)
	require.NoError(t, err)
	fb, err := r.Render(b)
	require.NoError(t, err)
	fa2, err := r.Render(a)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(fa.Pix, fa2.Pix), "same grid rendered differently")
	rect := r.WatermarkRect()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if m := fa.GrayAt(x, y).Y; m != 0 && fb.GrayAt(x, y).Y != m {
				t.Fatalf("watermark pixel (%d,%d) differs between frames", x, y)
			}
		}
	}
}

func TestEmptyWatermarkIsDisabled(t *testing.T) {
	g := life.NewEmptyGrid(8, 8)
	r, err := New(g.Size(), Options{PixelsPerCell: 4})
	require.NoError(t, err)
	assert.True(t, r.WatermarkRect().Empty())

	frame, err := r.Render(g)
	require.NoError(t, err)
	for _, v := range frame.Pix {
		require.Zero(t, v)
	}
}

func TestRenderRejectsMismatchedGrid(t *testing.T) {
	r, err := New(core.Size{W: 4, H: 4}, Options{PixelsPerCell: 1})
	require.NoError(t, err)
	_, err = r.Render(life.NewEmptyGrid(5, 4))
	assert.ErrorIs(t, err, core.ErrRender)
	_, err = r.Render(nil)
	assert.ErrorIs(t, err, core.ErrRender)
}

func TestFillRGBAReplicatesChannel(t *testing.T) {
	buf := make([]byte, 8)
	FillRGBA(buf, []byte{0, 200})
	assert.Equal(t, []byte{0, 0, 0, 0xff, 200, 200, 200, 0xff}, buf)
}
