package theme

import (
	"strings"
)

// Variable is a single CSS custom property.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// slotCount is the number of palette slots Variables emits first.
const slotCount = 8

// shade is a derived primary tone.
type shade struct {
	name   string
	factor float64
	darken bool
}

// primaryShades are emitted in this order after --color-primary-rgb.
var primaryShades = []shade{ //nolint:gochecknoglobals
	{name: "--color-primary-50", factor: 0.9},
	{name: "--color-primary-100", factor: 0.8},
	{name: "--color-primary-200", factor: 0.6},
	{name: "--color-primary-300", factor: 0.4},
	{name: "--color-primary-600", factor: 0.8, darken: true},
	{name: "--color-primary-700", factor: 0.7, darken: true},
}

// Variables derives the full set of custom properties for p.
// The 8 slots are always emitted as given. Derived values are skipped for slots that are
// not valid hex colours.
func Variables(p Palette) []Variable {
	vars := []Variable{
		{Name: "--color-primary", Value: p.Primary},
		{Name: "--color-secondary", Value: p.Secondary},
		{Name: "--color-accent", Value: p.Accent},
		{Name: "--color-background", Value: p.Background},
		{Name: "--color-surface", Value: p.Surface},
		{Name: "--color-text", Value: p.Text},
		{Name: "--color-text-secondary", Value: p.TextSecondary},
		{Name: "--color-border", Value: p.Border},
	}

	if primary, ok := ParseHex(p.Primary); ok {
		vars = append(vars, Variable{Name: "--color-primary-rgb", Value: primary.String()})

		for _, s := range primaryShades {
			c := Lighten(primary, s.factor)
			if s.darken {
				c = Darken(primary, s.factor)
			}

			vars = append(vars, Variable{Name: s.name, Value: c.String()})
		}
	}

	if secondary, ok := ParseHex(p.Secondary); ok {
		vars = append(vars, Variable{Name: "--color-secondary-rgb", Value: secondary.String()})
	}

	if accent, ok := ParseHex(p.Accent); ok {
		vars = append(vars, Variable{Name: "--color-accent-rgb", Value: accent.String()})
	}

	return vars
}

// InlineVariables is Variables without the slots that are not hex colours. Derived values
// are always digits, so the result is safe to place inside a <style> element.
func InlineVariables(p Palette) []Variable {
	vars := Variables(p)
	out := make([]Variable, 0, len(vars))

	for i, v := range vars {
		if i < slotCount {
			if _, ok := ParseHex(v.Value); !ok {
				continue
			}
		}

		out = append(out, v)
	}

	return out
}

// CSS renders vars as a :root rule. An empty list renders an empty string.
func CSS(vars []Variable) string {
	if len(vars) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(":root {\n")

	for _, v := range vars {
		b.WriteString("  ")
		b.WriteString(v.Name)
		b.WriteString(": ")
		b.WriteString(v.Value)
		b.WriteString(";\n")
	}

	b.WriteString("}\n")

	return b.String()
}
