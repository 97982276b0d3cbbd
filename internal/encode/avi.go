// Package encode persists rendered frames: an MJPEG AVI stream for the video
// and PNG files for stills.
package encode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"

	"lifereel/internal/core"
)

// DefaultQuality is the JPEG quality used for video frames.
const DefaultQuality = 90

var errClosed = errors.New("video writer closed")

// AVIWriter appends fixed-size frames to an MJPEG AVI file. It is not safe
// for concurrent use; frames must be added by a single writer in order.
type AVIWriter struct {
	path   string
	size   image.Point
	opts   jpeg.Options
	aw     mjpeg.AviWriter
	buf    bytes.Buffer
	frames int
	closed bool
}

// NewAVIWriter creates the video file at path for frames of the given size
// played back at fps. quality outside 1..100 selects DefaultQuality.
func NewAVIWriter(path string, size image.Point, fps, quality int) (*AVIWriter, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: video frame size %dx%d", core.ErrEncoding, size.X, size.Y)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", core.ErrEncoding, fps)
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrEncoding, err)
		}
	}
	aw, err := mjpeg.New(path, int32(size.X), int32(size.Y), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", core.ErrEncoding, path, err)
	}
	return &AVIWriter{path: path, size: size, opts: jpeg.Options{Quality: quality}, aw: aw}, nil
}

// AddFrame JPEG-encodes img and appends it to the stream.
func (w *AVIWriter) AddFrame(img image.Image) error {
	if w.closed {
		return fmt.Errorf("%w: %s: %v", core.ErrEncoding, w.path, errClosed)
	}
	if got := img.Bounds().Size(); got != w.size {
		return fmt.Errorf("%w: frame is %dx%d, video is %dx%d", core.ErrEncoding, got.X, got.Y, w.size.X, w.size.Y)
	}
	w.buf.Reset()
	if err := jpeg.Encode(&w.buf, img, &w.opts); err != nil {
		return fmt.Errorf("%w: jpeg frame %d: %v", core.ErrEncoding, w.frames+1, err)
	}
	if err := w.aw.AddFrame(w.buf.Bytes()); err != nil {
		return fmt.Errorf("%w: append frame %d: %v", core.ErrEncoding, w.frames+1, err)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames appended so far.
func (w *AVIWriter) Frames() int { return w.frames }

// Close finalizes the AVI index and closes the file. Closing twice is a
// no-op.
func (w *AVIWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.aw.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", core.ErrEncoding, w.path, err)
	}
	return nil
}
