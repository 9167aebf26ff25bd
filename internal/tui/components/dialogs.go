package components

import (
	"fmt"

	"github.com/allbin/serialterm/internal/settings"
	"github.com/allbin/serialterm/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SettingsDialog edits the theme and night mode. The theme is only a pending
// choice until applied.
type SettingsDialog struct {
	pendingTheme string
}

func NewSettingsDialog() *SettingsDialog {
	return &SettingsDialog{}
}

// Open starts editing from the current theme.
func (d *SettingsDialog) Open(currentTheme string) {
	d.pendingTheme = currentTheme
}

func (d *SettingsDialog) NextTheme() {
	d.pendingTheme = settings.NextTheme(d.pendingTheme, 1)
}

func (d *SettingsDialog) PrevTheme() {
	d.pendingTheme = settings.NextTheme(d.pendingTheme, -1)
}

func (d *SettingsDialog) PendingTheme() string {
	return d.pendingTheme
}

func (d *SettingsDialog) View(theme styles.Theme, nightMode bool) string {
	p := theme.Palette
	label := lipgloss.NewStyle().Foreground(p.Subtext1).Width(12)
	value := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	hint := lipgloss.NewStyle().Foreground(p.Overlay0)

	check := "[ ]"
	if nightMode {
		check = "[x]"
	}

	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Settings"),
		"",
		label.Render("Theme:")+value.Render(fmt.Sprintf("◂ %s ▸", d.pendingTheme)),
		label.Render("Night Mode:")+value.Render(check+" Enable"),
		"",
		hint.Render("←/→ theme · n night mode · enter apply · esc close"),
	))
}

// SavePrompt asks for the path the log is saved to
type SavePrompt struct {
	textInput textinput.Model
}

func NewSavePrompt() *SavePrompt {
	ti := textinput.New()
	ti.Prompt = "Save to: "
	ti.CharLimit = 1024
	ti.Width = 48
	return &SavePrompt{textInput: ti}
}

// Open pre-fills the prompt with a suggested path and focuses it.
func (sp *SavePrompt) Open(suggested string) tea.Cmd {
	sp.textInput.SetValue(suggested)
	sp.textInput.CursorEnd()
	return sp.textInput.Focus()
}

func (sp *SavePrompt) Close() {
	sp.textInput.Blur()
}

func (sp *SavePrompt) Value() string {
	return sp.textInput.Value()
}

func (sp *SavePrompt) SetValue(value string) {
	sp.textInput.SetValue(value)
}

func (sp *SavePrompt) Update(msg tea.Msg) (*SavePrompt, tea.Cmd) {
	var cmd tea.Cmd
	sp.textInput, cmd = sp.textInput.Update(msg)
	return sp, cmd
}

func (sp *SavePrompt) View(theme styles.Theme) string {
	hint := lipgloss.NewStyle().
		Foreground(theme.Palette.Overlay0).
		Render("enter save (.txt added when no extension) · esc cancel")
	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Save log"),
		"",
		sp.textInput.View(),
		"",
		hint,
	))
}
