// Package render produces solid-color image files that can be applied as wallpaper.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// DefaultSize is the edge length in pixels of generated images.
const DefaultSize = 256

// PNGRenderer writes a new PNG file for every call; files are never reused.
type PNGRenderer struct {
	dir  string
	size int
}

// NewPNGRenderer creates a renderer writing into dir (os.TempDir() when empty).
func NewPNGRenderer(dir string, size int) *PNGRenderer {
	if dir == "" {
		dir = os.TempDir()
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &PNGRenderer{dir: dir, size: size}
}

// Dir returns the output directory.
func (r *PNGRenderer) Dir() string {
	return r.dir
}

// CreateSolidColorImage writes a size x size image filled with c and returns its path.
func (r *PNGRenderer) CreateSolidColorImage(c color.Color) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	path := filepath.Join(r.dir, fmt.Sprintf("solid_color_%s.png", uuid.NewString()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	log.Debug().Str("color", c.String()).Str("path", path).Msg("Rendered solid color image")
	return path, nil
}
