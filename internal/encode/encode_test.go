package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifereel/internal/core"
)

func checker(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/4+y/4)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

func TestAVIWriterWritesRIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.avi")
	w, err := NewAVIWriter(path, image.Pt(32, 16), 16, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, w.AddFrame(checker(32, 16)))
	}
	assert.Equal(t, 3, w.Frames())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close must be a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "AVI ", string(data[8:12]))
}

func TestAVIWriterRejectsWrongFrameSize(t *testing.T) {
	w, err := NewAVIWriter(filepath.Join(t.TempDir(), "out.avi"), image.Pt(8, 8), 10, 75)
	require.NoError(t, err)
	defer w.Close()

	err = w.AddFrame(checker(16, 8))
	assert.ErrorIs(t, err, core.ErrEncoding)
	assert.Zero(t, w.Frames())
}

func TestAVIWriterAfterClose(t *testing.T) {
	w, err := NewAVIWriter(filepath.Join(t.TempDir(), "out.avi"), image.Pt(8, 8), 10, 75)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.AddFrame(checker(8, 8)), core.ErrEncoding)
}

func TestNewAVIWriterValidates(t *testing.T) {
	dir := t.TempDir()
	_, err := NewAVIWriter(filepath.Join(dir, "a.avi"), image.Pt(0, 8), 10, 75)
	assert.ErrorIs(t, err, core.ErrEncoding)
	_, err = NewAVIWriter(filepath.Join(dir, "b.avi"), image.Pt(8, 8), 0, 75)
	assert.ErrorIs(t, err, core.ErrEncoding)
}

func TestPNGSaverRoundTrip(t *testing.T) {
	img := checker(12, 8)
	path := FrameName(filepath.Join(t.TempDir(), "stills"), 3)
	assert.Equal(t, "frame3.png", filepath.Base(path))

	require.NoError(t, PNGSaver{}.Save(path, img))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			got := color.GrayModel.Convert(decoded.At(x, y)).(color.Gray)
			require.Equal(t, img.GrayAt(x, y), got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestPNGSaverReportsEncodingError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := PNGSaver{}.Save(filepath.Join(blocker, "frame1.png"), checker(4, 4))
	assert.ErrorIs(t, err, core.ErrEncoding)
}
