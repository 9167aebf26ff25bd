package components

import (
	"strings"

	"github.com/allbin/serialterm/internal/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Terminal is the scrolling console view of the log
type Terminal struct {
	viewport  viewport.Model
	formatter *LineFormatter
	lines     []string
}

func NewTerminal(width, height int, theme styles.Theme) *Terminal {
	vp := viewport.New(width, height)
	return &Terminal{
		viewport:  vp,
		formatter: NewLineFormatter(theme),
	}
}

func (t *Terminal) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	t.viewport.Width = width
	t.viewport.Height = height
	t.render(true)
}

func (t *Terminal) GetViewport() viewport.Model {
	return t.viewport
}

func (t *Terminal) SetTheme(theme styles.Theme) {
	t.formatter.SetTheme(theme)
	t.render(false)
}

// SetLines replaces the displayed log lines. The view keeps following the
// newest line unless the user scrolled up.
func (t *Terminal) SetLines(lines []string) {
	follow := t.viewport.AtBottom() || len(t.lines) == 0
	t.lines = lines
	t.render(follow)
}

func (t *Terminal) Lines() []string {
	return t.lines
}

func (t *Terminal) Clear() {
	t.lines = nil
	t.viewport.SetContent("")
	t.viewport.GotoTop()
}

func (t *Terminal) ToggleHex() {
	t.formatter.ToggleHex()
	t.render(false)
}

func (t *Terminal) GetDisplayMode() DisplayMode {
	return t.formatter.GetDisplayMode()
}

func (t *Terminal) ScrollUp() {
	t.viewport.LineUp(1)
}

func (t *Terminal) ScrollDown() {
	t.viewport.LineDown(1)
}

func (t *Terminal) GotoTop() {
	t.viewport.GotoTop()
}

func (t *Terminal) GotoBottom() {
	t.viewport.GotoBottom()
}

func (t *Terminal) AtBottom() bool {
	return t.viewport.AtBottom()
}

func (t *Terminal) render(follow bool) {
	t.viewport.SetContent(strings.Join(t.formatter.FormatLines(t.lines), "\n"))
	if follow {
		t.viewport.GotoBottom()
	}
}

func (t *Terminal) Update(msg tea.Msg) (viewport.Model, tea.Cmd) {
	// Only pass certain message types to viewport to prevent it from consuming our key bindings
	switch msg.(type) {
	case tea.WindowSizeMsg, tea.MouseMsg:
		var cmd tea.Cmd
		t.viewport, cmd = t.viewport.Update(msg)
		return t.viewport, cmd
	default:
		return t.viewport, nil
	}
}

func (t *Terminal) View() string {
	return t.viewport.View()
}
