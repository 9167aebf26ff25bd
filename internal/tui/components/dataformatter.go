package components

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/allbin/serialterm/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

const (
	sentPrefix     = "Sent: "
	receivedPrefix = "Received: "
	errorPrefix    = "Error: "
)

type DisplayMode struct {
	ShowHex bool
}

// LineFormatter renders console log lines with TX/RX indicators
type LineFormatter struct {
	theme styles.Theme
	mode  DisplayMode
}

func NewLineFormatter(theme styles.Theme) *LineFormatter {
	return &LineFormatter{theme: theme}
}

func (f *LineFormatter) SetTheme(theme styles.Theme) {
	f.theme = theme
}

func (f *LineFormatter) GetDisplayMode() DisplayMode {
	return f.mode
}

func (f *LineFormatter) ToggleHex() {
	f.mode.ShowHex = !f.mode.ShowHex
}

// FormatLine styles one log line. The line text itself is never altered
// beyond replacing control characters, so the saved log and the view agree.
func (f *LineFormatter) FormatLine(line string) string {
	p := f.theme.Palette

	switch {
	case strings.HasPrefix(line, sentPrefix):
		indicator := lipgloss.NewStyle().
			Foreground(p.Peach).
			Bold(true).
			Render("↗ TX")
		return fmt.Sprintf("%s %s", indicator, f.theme.SentStyle.Render(f.payload(strings.TrimPrefix(line, sentPrefix))))

	case strings.HasPrefix(line, receivedPrefix):
		indicator := lipgloss.NewStyle().
			Foreground(p.Info).
			Bold(true).
			Render("↙ RX")
		return fmt.Sprintf("%s %s", indicator, f.theme.ReceivedStyle.Render(f.payload(strings.TrimPrefix(line, receivedPrefix))))

	case strings.HasPrefix(line, errorPrefix):
		return f.theme.LogErrorStyle.Render("✗ " + printable(line))
	}

	return printable(line)
}

func (f *LineFormatter) FormatLines(lines []string) []string {
	formatted := make([]string, len(lines))
	for i, line := range lines {
		formatted[i] = f.FormatLine(line)
	}
	return formatted
}

func (f *LineFormatter) payload(text string) string {
	if f.mode.ShowHex {
		return fmt.Sprintf("% X", []byte(text))
	}
	return printable(text)
}

// printable replaces control characters so they cannot move the cursor
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return '·'
	}, s)
}
