package theme

// Preset is a named palette shipped with the site.
type Preset struct {
	Name    string
	Palette Palette
	Default bool
}

// Presets returns the palettes seeded into an empty store. Exactly one is the default.
func Presets() []Preset {
	neutral := func(primary, secondary, accent string) Palette {
		return Palette{
			Primary:       primary,
			Secondary:     secondary,
			Accent:        accent,
			Background:    "#ffffff",
			Surface:       "#f9fafb",
			Text:          "#111827",
			TextSecondary: "#6b7280",
			Border:        "#e5e7eb",
		}
	}

	return []Preset{
		{Name: "Turuncu Tema (Varsayılan)", Palette: neutral("#d97706", "#f59e0b", "#fbbf24"), Default: true},
		{Name: "Mavi Tema", Palette: neutral("#3b82f6", "#60a5fa", "#93c5fd")},
		{Name: "Yeşil Tema", Palette: neutral("#10b981", "#34d399", "#6ee7b7")},
		{Name: "Mor Tema", Palette: neutral("#8b5cf6", "#a78bfa", "#c4b5fd")},
	}
}

// DefaultPalette returns the palette of the default preset.
func DefaultPalette() Palette {
	for _, p := range Presets() {
		if p.Default {
			return p.Palette
		}
	}

	return Palette{}
}
