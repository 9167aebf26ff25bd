package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serialterm/internal/tui/styles"
)

const maxHistory = 100

// Input is the command line below the console.
type Input struct {
	textInput textinput.Model
	history   *CommandHistory
	width     int
}

func NewInput(placeholder string) *Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0 // unlimited
	ti.Prompt = "" // rendered by ViewWithMode

	return &Input{
		textInput: ti,
		history:   NewCommandHistory(maxHistory),
	}
}

func (i *Input) SetWidth(width int) {
	i.width = width
	// border(2) + padding(2) + prompt(1) + space(1)
	i.textInput.Width = max(width-6, 20)
}

func (i *Input) Focus() tea.Cmd {
	return i.textInput.Focus()
}

func (i *Input) Blur() {
	i.textInput.Blur()
}

func (i *Input) Value() string {
	return i.textInput.Value()
}

func (i *Input) SetValue(value string) {
	i.textInput.SetValue(value)
}

func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	return i, cmd
}

// Sent records the current value in the history and clears the line.
func (i *Input) Sent() {
	i.history.Push(i.textInput.Value())
	i.textInput.SetValue("")
}

func (i *Input) History() []string {
	return i.history.Entries()
}

// RecallPrev replaces the line with the previous command.
func (i *Input) RecallPrev() {
	if cmd, ok := i.history.Prev(i.textInput.Value()); ok {
		i.textInput.SetValue(cmd)
		i.textInput.CursorEnd()
	}
}

// RecallNext replaces the line with the next command or the unsent draft.
func (i *Input) RecallNext() {
	if cmd, ok := i.history.Next(); ok {
		i.textInput.SetValue(cmd)
		i.textInput.CursorEnd()
	}
}

// ViewWithMode renders the input box. canSend dims the prompt while no
// connection is open.
func (i *Input) ViewWithMode(theme styles.Theme, isInsertMode, canSend bool) string {
	p := theme.Palette

	promptStyle := lipgloss.NewStyle().Foreground(p.Green).Bold(true)
	if !canSend {
		promptStyle = promptStyle.Foreground(p.Overlay0)
	}
	prompt := promptStyle.Render(">")

	var content string
	if isInsertMode {
		content = lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ", i.textInput.View())
	} else {
		hint := "Press 'i' to type a command"
		if !canSend {
			hint = "Press 't' to connect, 'i' to type"
		}
		content = lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ",
			lipgloss.NewStyle().Foreground(p.Overlay0).Render(hint))
	}

	style := theme.InputStyle.
		Width(max(i.width-4, 10)).
		AlignHorizontal(lipgloss.Left)
	if isInsertMode {
		style = style.BorderForeground(p.Green)
	}
	return style.Render(content)
}
