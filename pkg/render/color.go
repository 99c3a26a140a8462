package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Palette holds the colors of a drawing.
type Palette struct {
	Foreground color.RGBA // words and rectangle outlines
	Background color.RGBA // ellipses behind words
	Canvas     color.RGBA // whole image
}

var (
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}
)

// DefaultPalette is black words on white.
var DefaultPalette = Palette{Foreground: Black, Background: White, Canvas: White}

var namedColors = map[string]color.RGBA{
	"black":     Black,
	"white":     White,
	"red":       {255, 0, 0, 255},
	"green":     {0, 128, 0, 255},
	"blue":      {0, 0, 255, 255},
	"yellow":    {255, 255, 0, 255},
	"orange":    {255, 165, 0, 255},
	"purple":    {128, 0, 128, 255},
	"gray":      {128, 128, 128, 255},
	"grey":      {128, 128, 128, 255},
	"navy":      {0, 0, 128, 255},
	"teal":      {0, 128, 128, 255},
	"maroon":    {128, 0, 0, 255},
	"olive":     {128, 128, 0, 255},
	"silver":    {192, 192, 192, 255},
	"brown":     {165, 42, 42, 255},
	"pink":      {255, 192, 203, 255},
	"lightgray": {211, 211, 211, 255},
	"darkblue":  {0, 0, 139, 255},
	"darkgreen": {0, 100, 0, 255},
}

// ParseColor accepts a color name ("navy") or CSS hex (#rgb, #rrggbb,
// #rrggbbaa; the leading # is optional).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ColorNames lists the accepted color names.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for n := range namedColors {
		names = append(names, n)
	}
	return names
}

// Hex formats c as #rrggbb, or #rrggbbaa when not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// scale multiplies the RGB channels of c by t in [0, 1], keeping alpha.
func scale(c color.RGBA, t float64) color.RGBA {
	t = max(0, min(1, t))
	return color.RGBA{
		R: uint8(float64(c.R) * t),
		G: uint8(float64(c.G) * t),
		B: uint8(float64(c.B) * t),
		A: c.A,
	}
}

// rankColor shades the i-th of n words.
func rankColor(c color.RGBA, i, n int) color.RGBA {
	if n <= 0 {
		return scale(c, 0)
	}
	return scale(c, math.Pow(float64(i)/float64(n), 0.4))
}
