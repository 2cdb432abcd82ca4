package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in    string
		want  RGB
		valid bool
	}{
		{in: "#d97706", want: RGB{R: 217, G: 119, B: 6}, valid: true},
		{in: "d97706", want: RGB{R: 217, G: 119, B: 6}, valid: true},
		{in: "#D97706", want: RGB{R: 217, G: 119, B: 6}, valid: true},
		{in: "#000000", want: RGB{}, valid: true},
		{in: "#ffffff", want: RGB{R: 255, G: 255, B: 255}, valid: true},
		{in: "#fff"},
		{in: "##d97706"},
		{in: "#d97706 "},
		{in: "#zz7706"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLightenDarken(t *testing.T) {
	c := RGB{R: 217, G: 119, B: 6}

	tests := []struct {
		name string
		got  RGB
		want RGB
	}{
		{name: "lighten 0.9", got: Lighten(c, 0.9), want: RGB{R: 251, G: 241, B: 230}},
		{name: "lighten 0.8", got: Lighten(c, 0.8), want: RGB{R: 247, G: 228, B: 205}},
		{name: "lighten 0.6", got: Lighten(c, 0.6), want: RGB{R: 240, G: 201, B: 155}},
		{name: "lighten 0.4", got: Lighten(c, 0.4), want: RGB{R: 232, G: 173, B: 106}},
		{name: "darken 0.8", got: Darken(c, 0.8), want: RGB{R: 174, G: 95, B: 5}},
		{name: "darken 0.7", got: Darken(c, 0.7), want: RGB{R: 152, G: 83, B: 4}},
		{name: "lighten to white", got: Lighten(c, 1), want: RGB{R: 255, G: 255, B: 255}},
		{name: "white stays white", got: Lighten(RGB{R: 255, G: 255, B: 255}, 0.9), want: RGB{R: 255, G: 255, B: 255}},
		{name: "darken to black", got: Darken(c, 0), want: RGB{}},
		{name: "halves round up", got: Darken(RGB{R: 25, G: 5, B: 1}, 0.5), want: RGB{R: 13, G: 3, B: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRGBFormat(t *testing.T) {
	c := RGB{R: 217, G: 119, B: 6}
	assert.Equal(t, "217, 119, 6", c.String())
	assert.Equal(t, "#d97706", c.Hex())
}

func TestVariables(t *testing.T) {
	want := []Variable{
		{Name: "--color-primary", Value: "#d97706"},
		{Name: "--color-secondary", Value: "#f59e0b"},
		{Name: "--color-accent", Value: "#fbbf24"},
		{Name: "--color-background", Value: "#ffffff"},
		{Name: "--color-surface", Value: "#f9fafb"},
		{Name: "--color-text", Value: "#111827"},
		{Name: "--color-text-secondary", Value: "#6b7280"},
		{Name: "--color-border", Value: "#e5e7eb"},
		{Name: "--color-primary-rgb", Value: "217, 119, 6"},
		{Name: "--color-primary-50", Value: "251, 241, 230"},
		{Name: "--color-primary-100", Value: "247, 228, 205"},
		{Name: "--color-primary-200", Value: "240, 201, 155"},
		{Name: "--color-primary-300", Value: "232, 173, 106"},
		{Name: "--color-primary-600", Value: "174, 95, 5"},
		{Name: "--color-primary-700", Value: "152, 83, 4"},
		{Name: "--color-secondary-rgb", Value: "245, 158, 11"},
		{Name: "--color-accent-rgb", Value: "251, 191, 36"},
	}

	got := Variables(DefaultPalette())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Variables mismatch (-want +got):\n%s", diff)
	}

	// same input, same output
	assert.Equal(t, got, Variables(DefaultPalette()))
}

func TestVariablesSkipsInvalidColours(t *testing.T) {
	p := DefaultPalette()
	p.Primary = "orange"
	p.Accent = "#12345"

	vars := Variables(p)

	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}

	assert.Len(t, vars, 9)
	assert.Equal(t, "orange", vars[0].Value)
	assert.NotContains(t, names, "--color-primary-rgb")
	assert.NotContains(t, names, "--color-primary-50")
	assert.NotContains(t, names, "--color-accent-rgb")
	assert.Contains(t, names, "--color-secondary-rgb")
}

func TestInlineVariablesDropsInvalidSlots(t *testing.T) {
	p := DefaultPalette()
	p.Accent = "red}</style><script>alert(1)</script>"
	p.Text = "#12345"

	vars := InlineVariables(p)

	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
		assert.NotContains(t, v.Value, "<")
	}

	assert.NotContains(t, names, "--color-accent")
	assert.NotContains(t, names, "--color-text")
	assert.Contains(t, names, "--color-primary")
	assert.Contains(t, names, "--color-primary-700")
	assert.Len(t, vars, len(Variables(p))-2)

	assert.Empty(t, InlineVariables(Palette{}))
	assert.Equal(t, Variables(DefaultPalette()), InlineVariables(DefaultPalette()))
}

func TestCSS(t *testing.T) {
	assert.Empty(t, CSS(nil))

	css := CSS([]Variable{
		{Name: "--color-primary", Value: "#d97706"},
		{Name: "--color-primary-rgb", Value: "217, 119, 6"},
	})
	assert.Equal(t, ":root {\n  --color-primary: #d97706;\n  --color-primary-rgb: 217, 119, 6;\n}\n", css)
}

func TestPresets(t *testing.T) {
	presets := Presets()
	assert.Len(t, presets, 4)

	defaults := 0

	for _, p := range presets {
		if p.Default {
			defaults++
		}

		for _, c := range []string{
			p.Palette.Primary, p.Palette.Secondary, p.Palette.Accent, p.Palette.Background,
			p.Palette.Surface, p.Palette.Text, p.Palette.TextSecondary, p.Palette.Border,
		} {
			_, ok := ParseHex(c)
			assert.True(t, ok, "%s: %q", p.Name, c)
		}
	}

	assert.Equal(t, 1, defaults)
	assert.Equal(t, "#d97706", DefaultPalette().Primary)
}
