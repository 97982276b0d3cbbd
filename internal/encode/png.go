package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"lifereel/internal/core"
)

// FrameName returns the still-image path for generation k inside dir.
func FrameName(dir string, k int) string {
	return filepath.Join(dir, "frame"+strconv.Itoa(k)+".png")
}

// PNGSaver writes still frames as PNG files. The zero value is ready to use
// and safe for concurrent use on distinct paths.
type PNGSaver struct{}

// Save encodes img to path, creating the parent directory when needed.
func (PNGSaver) Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", core.ErrEncoding, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrEncoding, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%w: png %s: %v", core.ErrEncoding, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrEncoding, err)
	}
	return nil
}
