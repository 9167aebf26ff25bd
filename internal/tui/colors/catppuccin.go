package colors

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme renders with
type Palette struct {
	Base     lipgloss.Color // Dark background
	Surface0 lipgloss.Color // Surface colors
	Surface1 lipgloss.Color
	Surface2 lipgloss.Color
	Overlay0 lipgloss.Color
	Subtext0 lipgloss.Color
	Subtext1 lipgloss.Color
	Text     lipgloss.Color // Main text

	Accent lipgloss.Color // Titles, port name
	Info   lipgloss.Color // Normal mode, RX
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Peach  lipgloss.Color
	Red    lipgloss.Color
}

// Catppuccin Mocha, the palette of the fallback theme
var Catppuccin = Palette{
	Base:     lipgloss.Color("#1e1e2e"),
	Surface0: lipgloss.Color("#313244"),
	Surface1: lipgloss.Color("#45475a"),
	Surface2: lipgloss.Color("#585b70"),
	Overlay0: lipgloss.Color("#6c7086"),
	Subtext0: lipgloss.Color("#a6adc8"),
	Subtext1: lipgloss.Color("#bac2de"),
	Text:     lipgloss.Color("#cdd6f4"),
	Accent:   lipgloss.Color("#cba6f7"), // Mauve
	Info:     lipgloss.Color("#89b4fa"), // Blue
	Green:    lipgloss.Color("#a6e3a1"),
	Yellow:   lipgloss.Color("#f9e2af"),
	Peach:    lipgloss.Color("#fab387"),
	Red:      lipgloss.Color("#f38ba8"),
}

var palettes = map[string]Palette{
	"default": Catppuccin,
	"aqua": {
		Base:     lipgloss.Color("#0b1f2a"),
		Surface0: lipgloss.Color("#15394a"),
		Surface1: lipgloss.Color("#1f4d63"),
		Surface2: lipgloss.Color("#2b627c"),
		Overlay0: lipgloss.Color("#5b8a9e"),
		Subtext0: lipgloss.Color("#a3c9d8"),
		Subtext1: lipgloss.Color("#bfdbe6"),
		Text:     lipgloss.Color("#e0f4fb"),
		Accent:   lipgloss.Color("#4fd1e8"),
		Info:     lipgloss.Color("#5aa9f0"),
		Green:    lipgloss.Color("#7ee0b5"),
		Yellow:   lipgloss.Color("#f2dc8d"),
		Peach:    lipgloss.Color("#f5b37a"),
		Red:      lipgloss.Color("#f07a86"),
	},
	"radiance": {
		Base:     lipgloss.Color("#2b2622"),
		Surface0: lipgloss.Color("#4a403a"),
		Surface1: lipgloss.Color("#5c4f47"),
		Surface2: lipgloss.Color("#736357"),
		Overlay0: lipgloss.Color("#9a8a7c"),
		Subtext0: lipgloss.Color("#cdbfb2"),
		Subtext1: lipgloss.Color("#ddd1c6"),
		Text:     lipgloss.Color("#f6f1ec"),
		Accent:   lipgloss.Color("#f08a3c"),
		Info:     lipgloss.Color("#e9b96e"),
		Green:    lipgloss.Color("#9ccc65"),
		Yellow:   lipgloss.Color("#ffd54f"),
		Peach:    lipgloss.Color("#ffab76"),
		Red:      lipgloss.Color("#ef5350"),
	},
	"scidblue": {
		Base:     lipgloss.Color("#10182b"),
		Surface0: lipgloss.Color("#1c2a4a"),
		Surface1: lipgloss.Color("#263a63"),
		Surface2: lipgloss.Color("#334c7d"),
		Overlay0: lipgloss.Color("#6379a6"),
		Subtext0: lipgloss.Color("#a8b6d6"),
		Subtext1: lipgloss.Color("#c2cde6"),
		Text:     lipgloss.Color("#e6ecfa"),
		Accent:   lipgloss.Color("#6f9cff"),
		Info:     lipgloss.Color("#8fb4ff"),
		Green:    lipgloss.Color("#8fd694"),
		Yellow:   lipgloss.Color("#f5d76e"),
		Peach:    lipgloss.Color("#f7a76c"),
		Red:      lipgloss.Color("#f2728a"),
	},
	"elegance": {
		Base:     lipgloss.Color("#1a1a1a"),
		Surface0: lipgloss.Color("#2d2d2d"),
		Surface1: lipgloss.Color("#3d3d3d"),
		Surface2: lipgloss.Color("#525252"),
		Overlay0: lipgloss.Color("#7a7a7a"),
		Subtext0: lipgloss.Color("#b3b3b3"),
		Subtext1: lipgloss.Color("#cccccc"),
		Text:     lipgloss.Color("#eeeeee"),
		Accent:   lipgloss.Color("#c9a96e"),
		Info:     lipgloss.Color("#9fb3c8"),
		Green:    lipgloss.Color("#a3be8c"),
		Yellow:   lipgloss.Color("#ebcb8b"),
		Peach:    lipgloss.Color("#d08770"),
		Red:      lipgloss.Color("#bf616a"),
	},
}

// ForTheme returns the palette of a theme, or Catppuccin for unknown names.
func ForTheme(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return Catppuccin
}
