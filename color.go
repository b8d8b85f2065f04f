package entropy

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a drawing backend
// through the color.Color interface.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is the default marker color: fully transparent black.
var ColorTransparent = Color{}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA implements color.Color with alpha-premultiplied 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	af := clamp01(c.A)
	a = uint32(af*0xffff + 0.5)
	r = uint32(clamp01(c.R)*af*0xffff + 0.5)
	g = uint32(clamp01(c.G)*af*0xffff + 0.5)
	b = uint32(clamp01(c.B)*af*0xffff + 0.5)
	return r, g, b, a
}

// Transparent reports whether the color has zero alpha.
func (c Color) Transparent() bool { return c.A <= 0 }

// Hex formats the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	h := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
	if c.A >= 1 {
		return h
	}
	return fmt.Sprintf("%s%02x", h, uint8(clamp01(c.A)*255+0.5))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor parses a CSS-style color string. Accepted forms are the CSS
// named colors, "transparent", and hex in #rgb, #rgba, #rrggbb and #rrggbbaa.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}
	if s == "transparent" {
		return ColorTransparent, nil
	}
	if !strings.HasPrefix(s, "#") {
		named, ok := colornames.Map[s]
		if !ok {
			return Color{}, fmt.Errorf("parse color %q: unknown color name", s)
		}
		return Color{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: float64(named.A) / 255,
		}, nil
	}

	hex := s[1:]
	alpha := 1.0
	switch len(hex) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(hex[3:], 2), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		hex = hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("parse color %q: bad hex length", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// RandomColor returns one of the 12-bit colors #100 through #fff.
func RandomColor(rng *rand.Rand) Color {
	v := max(0x100, rng.IntN(0x1000))
	return Color{
		R: float64(v>>8&0xf) / 15,
		G: float64(v>>4&0xf) / 15,
		B: float64(v&0xf) / 15,
		A: 1,
	}
}
