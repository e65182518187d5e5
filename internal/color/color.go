// Package color provides the RGB color value used throughout wallslapper
// and the linear interpolation between two colors.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a string is not a #RRGGBB color.
var ErrInvalid = errors.New("invalid color")

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Color is an RGB triple without alpha. Its canonical form is "#RRGGBB".
type Color struct {
	R, G, B uint8
}

// Parse parses a "#RRGGBB" string. Hex digits are case-insensitive.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !hexPattern.MatchString(s) {
		return Color{}, fmt.Errorf("%w: %q (want #RRGGBB)", ErrInvalid, s)
	}

	// colorful.Hex also accepts the 3-digit form; the pattern above rules it out.
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}

	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the normalized "#RRGGBB" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Equal compares normalized forms.
func (c Color) Equal(other Color) bool {
	return c.String() == other.String()
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Interpolate returns the color at factor between start and end, computed
// per channel in RGB space and rounded to the nearest integer.
// factor is expected in [0,1]; values outside extrapolate and are clamped.
func Interpolate(start, end Color, factor float64) Color {
	return Color{
		R: lerpChannel(start.R, end.R, factor),
		G: lerpChannel(start.G, end.G, factor),
		B: lerpChannel(start.B, end.B, factor),
	}
}

func lerpChannel(from, to uint8, factor float64) uint8 {
	v := math.Round(float64(from) + (float64(to)-float64(from))*factor)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
