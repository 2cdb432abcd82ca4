// Package theme derives CSS custom properties from a colour palette and resolves the active
// palette with a cache fallback.
package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// hexPattern accepts six hex digits with an optional leading '#'.
var hexPattern = regexp.MustCompile(`(?i)^#?([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`)

// Palette is a named set of 8 semantic colour slots, each a hex RGB value.
type Palette struct {
	Primary       string `json:"primary"       validate:"required,hexrgb"`
	Secondary     string `json:"secondary"     validate:"required,hexrgb"`
	Accent        string `json:"accent"        validate:"required,hexrgb"`
	Background    string `json:"background"    validate:"required,hexrgb"`
	Surface       string `json:"surface"       validate:"required,hexrgb"`
	Text          string `json:"text"          validate:"required,hexrgb"`
	TextSecondary string `json:"textSecondary" validate:"required,hexrgb"`
	Border        string `json:"border"        validate:"required,hexrgb"`
}

// IsZero reports whether no slot is set.
func (p Palette) IsZero() bool {
	return p == Palette{}
}

// RGB is a colour split into its channels.
type RGB struct {
	R, G, B uint8
}

// String formats the colour as a "r, g, b" triplet usable inside rgba(var(...), a).
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb", case-insensitive.
func ParseHex(s string) (RGB, bool) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, false
	}

	var ch [3]uint8

	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, false
		}

		ch[i] = uint8(v)
	}

	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// Lighten interpolates each channel toward white by fraction f.
func Lighten(c RGB, f float64) RGB {
	lighten := func(v uint8) uint8 {
		x := float64(v) + (255-float64(v))*f
		return clamp(math.Min(255, round(x)))
	}

	return RGB{R: lighten(c.R), G: lighten(c.G), B: lighten(c.B)}
}

// Darken scales each channel by factor f.
func Darken(c RGB, f float64) RGB {
	darken := func(v uint8) uint8 {
		return clamp(math.Max(0, round(float64(v)*f)))
	}

	return RGB{R: darken(c.R), G: darken(c.G), B: darken(c.B)}
}

// round rounds half up, so 12.5 -> 13 and -12.5 -> -12.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func clamp(x float64) uint8 {
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 255
	default:
		return uint8(x)
	}
}
