package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines one color scheme for the glyph layer. Secondary is optional;
// an empty value means the theme contributes a single color to the palette.
type Theme struct {
	Name      string
	Main      lipgloss.Color
	Secondary lipgloss.Color
}

// Available themes
var (
	ThemeSumi = Theme{
		Name:      "sumi",
		Main:      lipgloss.Color("#3a3a44"), // Ink gray
		Secondary: lipgloss.Color("#55555f"),
	}

	ThemeMomiji = Theme{
		Name:      "momiji",
		Main:      lipgloss.Color("#c14b3a"), // Autumn maple
		Secondary: lipgloss.Color("#e08a3c"),
	}

	ThemeTake = Theme{
		Name:      "take",
		Main:      lipgloss.Color("#4f7a4f"), // Bamboo green
		Secondary: lipgloss.Color("#7aa874"),
	}

	ThemeMizu = Theme{
		Name:      "mizu",
		Main:      lipgloss.Color("#3b6e91"), // Water blue
		Secondary: lipgloss.Color("#6fa3c7"),
	}

	ThemeFuji = Theme{
		Name:      "fuji",
		Main:      lipgloss.Color("#8a6fb3"), // Wisteria
		Secondary: lipgloss.Color("#b39ddb"),
	}

	ThemeSakura = Theme{
		Name:      "sakura",
		Main:      lipgloss.Color("#d98ba3"), // Blossom pink
		Secondary: lipgloss.Color("#f2c1cf"),
	}

	ThemeKogane = Theme{
		Name: "kogane",
		Main: lipgloss.Color("#c9a227"), // Gold, no secondary
	}

	ThemeYoru = Theme{
		Name: "yoru",
		Main: lipgloss.Color("#2e3750"), // Night indigo, no secondary
	}

	// All available themes
	Themes = []Theme{
		ThemeSumi,
		ThemeMomiji,
		ThemeTake,
		ThemeMizu,
		ThemeFuji,
		ThemeSakura,
		ThemeKogane,
		ThemeYoru,
	}
)

// palette holds every main and non-empty secondary color across all themes.
// Built once at package init; glyph colors are drawn uniformly from it.
var palette []lipgloss.Color

func init() {
	for _, t := range Themes {
		palette = append(palette, t.Main)
		if t.Secondary != "" {
			palette = append(palette, t.Secondary)
		}
	}
}

// Palette returns the session-wide color pool.
func Palette() []lipgloss.Color {
	return palette
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSumi
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
