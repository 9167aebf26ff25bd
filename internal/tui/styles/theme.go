package styles

import (
	"github.com/allbin/serialterm/internal/settings"
	"github.com/allbin/serialterm/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

type StatusType int

const (
	StatusConnected StatusType = iota
	StatusDisconnected
	StatusError
)

// Theme holds the styles derived from a palette and the window background
type Theme struct {
	Name    string
	Palette colors.Palette

	// Header styles
	TitleStyle lipgloss.Style

	// Status styles
	StatusConnectedStyle    lipgloss.Style
	StatusDisconnectedStyle lipgloss.Style

	// Content area styles
	ContentBorderStyle lipgloss.Style

	// Input styles
	InputStyle lipgloss.Style

	// Dialog styles
	DialogStyle lipgloss.Style

	// Error styles
	ErrorStyle lipgloss.Style

	// Info styles
	InfoStyle lipgloss.Style

	// Log line styles
	SentStyle     lipgloss.Style
	ReceivedStyle lipgloss.Style
	LogErrorStyle lipgloss.Style

	// Background is applied to the whole window; empty keeps the terminal's own
	Background lipgloss.TerminalColor
}

// NewTheme builds the styles of a theme. background is the settings background
// value; the day background leaves the terminal background untouched.
func NewTheme(name, background string) Theme {
	p := colors.ForTheme(name)

	t := Theme{
		Name:    name,
		Palette: p,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Background(p.Surface0).
			Padding(0, 1),

		StatusConnectedStyle: lipgloss.NewStyle().
			Foreground(p.Green).
			Bold(true),

		StatusDisconnectedStyle: lipgloss.NewStyle().
			Foreground(p.Red).
			Bold(true),

		ContentBorderStyle: lipgloss.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Surface1),

		InputStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Padding(0, 1),

		DialogStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),

		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Red).
			Align(lipgloss.Center),

		InfoStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Align(lipgloss.Center),

		SentStyle:     lipgloss.NewStyle().Foreground(p.Green),
		ReceivedStyle: lipgloss.NewStyle().Foreground(p.Text),
		LogErrorStyle: lipgloss.NewStyle().Foreground(p.Red).Bold(true),

		Background: lipgloss.NoColor{},
	}

	if background != "" && background != settings.DefaultBackground {
		t.Background = lipgloss.Color(background)
	}
	return t
}

func (t Theme) StatusStyle(status StatusType) lipgloss.Style {
	switch status {
	case StatusConnected:
		return t.StatusConnectedStyle
	default:
		return t.StatusDisconnectedStyle
	}
}
