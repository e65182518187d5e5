package transition

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// ErrPaletteNotFound is returned when a named palette is not configured.
var ErrPaletteNotFound = errors.New("palette not found")

// PaletteSource looks up palettes by name.
type PaletteSource interface {
	Palette(name string) ([]color.Color, bool)
}

// RunPinwheel transitions through every color of the named palette in order,
// spending perColor on each. The first failing transition stops the run.
func (e *Engine) RunPinwheel(palettes PaletteSource, name string, perColor time.Duration) error {
	colors, ok := palettes.Palette(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrPaletteNotFound, name)
	}

	log.Info().Str("palette", name).Int("colors", len(colors)).Dur("per_color", perColor).Msg("Starting pinwheel")

	for i, c := range colors {
		log.Info().Int("index", i).Str("color", c.String()).Msg("Pinwheel color")
		if err := e.TransitionToColor(c, perColor); err != nil {
			return fmt.Errorf("pinwheel %q color %d (%s): %w", name, i, c, err)
		}
	}
	return nil
}
