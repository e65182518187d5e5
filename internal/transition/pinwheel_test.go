package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/wallslapper/internal/color"
)

type palettes map[string][]color.Color

func (p palettes) Palette(name string) ([]color.Color, bool) {
	c, ok := p[name]
	return c, ok
}

func TestRunPinwheel_Sequential(t *testing.T) {
	h := newHarness("#000000")
	src := palettes{
		"rgb": {color.MustParse("#FF0000"), color.MustParse("#00FF00"), color.MustParse("#0000FF")},
	}

	require.NoError(t, h.engine.RunPinwheel(src, "rgb", 200*time.Millisecond))

	// 2 steps per color, each starting from the previous color.
	var got []string
	for _, c := range h.renderer.colors {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"#000000", "#800000",
		"#FF0000", "#808000",
		"#00FF00", "#008080",
	}, got)
	assert.Equal(t, "#0000FF", h.persisted(t))
	assert.Equal(t, 3, h.store.writes)
}

func TestRunPinwheel_UnknownPalette(t *testing.T) {
	h := newHarness("#000000")

	err := h.engine.RunPinwheel(palettes{}, "missing", time.Second)

	assert.ErrorIs(t, err, ErrPaletteNotFound)
	assert.Empty(t, h.renderer.colors)
}

func TestRunPinwheel_FailureHaltsSequence(t *testing.T) {
	h := newHarness("#000000")
	h.renderer.failAt = 3 // first step of the second color
	src := palettes{
		"rgb": {color.MustParse("#FF0000"), color.MustParse("#00FF00"), color.MustParse("#0000FF")},
	}

	err := h.engine.RunPinwheel(src, "rgb", 200*time.Millisecond)

	require.Error(t, err)
	assert.Len(t, h.renderer.colors, 3)
	assert.Equal(t, "#FF0000", h.persisted(t), "only the first color completed")
}
