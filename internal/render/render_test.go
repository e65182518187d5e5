package render

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/wallslapper/internal/color"
)

func TestCreateSolidColorImage(t *testing.T) {
	dir := t.TempDir()
	r := NewPNGRenderer(dir, 0)

	path, err := r.CreateSolidColorImage(color.MustParse("#FF8000"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "solid_color_"))
	assert.Equal(t, ".png", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, DefaultSize, b.Dx())
	assert.Equal(t, DefaultSize, b.Dy())

	for _, p := range [][2]int{{0, 0}, {128, 77}, {255, 255}} {
		cr, cg, cb, ca := img.At(p[0], p[1]).RGBA()
		assert.Equal(t, uint32(0xffff), cr)
		assert.Equal(t, uint32(0x8080), cg)
		assert.Equal(t, uint32(0), cb)
		assert.Equal(t, uint32(0xffff), ca)
	}
}

func TestCreateSolidColorImage_FreshFileEachCall(t *testing.T) {
	r := NewPNGRenderer(t.TempDir(), 4)
	c := color.MustParse("#000000")

	first, err := r.CreateSolidColorImage(c)
	require.NoError(t, err)
	second, err := r.CreateSolidColorImage(c)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCreateSolidColorImage_MissingDir(t *testing.T) {
	r := NewPNGRenderer(filepath.Join(t.TempDir(), "nope"), 4)
	_, err := r.CreateSolidColorImage(color.MustParse("#000000"))
	assert.Error(t, err)
}
