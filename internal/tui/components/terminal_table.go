package components

import (
	"fmt"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/tui/styles"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PortPicker is the table of enumerated ports the user selects from
type PortPicker struct {
	table table.Model
	ports []serial.PortInfo
}

func NewPortPicker(width, height int, theme styles.Theme) *PortPicker {
	t := table.New(
		table.WithColumns(portColumns(width)),
		table.WithFocused(true),
		table.WithHeight(pickerHeight(height)),
	)

	pp := &PortPicker{table: t}
	pp.SetTheme(theme)
	return pp
}

func (pp *PortPicker) SetTheme(theme styles.Theme) {
	p := theme.Palette
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Subtext0).
		BorderBottom(true).
		Bold(true).
		Foreground(p.Text)
	s.Selected = s.Selected.
		Foreground(p.Text).
		Background(p.Surface1).
		Bold(false)
	pp.table.SetStyles(s)
}

func (pp *PortPicker) SetSize(width, height int) {
	pp.table.SetColumns(portColumns(width))
	pp.table.SetHeight(pickerHeight(height))
	pp.table.SetWidth(width)
	pp.table.UpdateViewport()
}

// SetPorts fills the table and puts the cursor on selected, if listed.
func (pp *PortPicker) SetPorts(ports []serial.PortInfo, selected string) {
	pp.ports = ports
	rows := make([]table.Row, len(ports))
	cursor := 0
	for i, info := range ports {
		usb := ""
		if info.IsUSB {
			usb = fmt.Sprintf("%s:%s", info.VendorID, info.ProductID)
		}
		rows[i] = table.Row{info.Path, info.Description, usb}
		if info.Path == selected {
			cursor = i
		}
	}
	pp.table.SetRows(rows)
	pp.table.SetCursor(cursor)
}

// Selected returns the port under the cursor, or "" for an empty table.
func (pp *PortPicker) Selected() string {
	i := pp.table.Cursor()
	if i < 0 || i >= len(pp.ports) {
		return ""
	}
	return pp.ports[i].Path
}

func (pp *PortPicker) Len() int {
	return len(pp.ports)
}

func (pp *PortPicker) Update(msg tea.Msg) (*PortPicker, tea.Cmd) {
	var cmd tea.Cmd
	pp.table, cmd = pp.table.Update(msg)
	return pp, cmd
}

func (pp *PortPicker) View(theme styles.Theme) string {
	title := theme.TitleStyle.Render("Select port")
	if len(pp.ports) == 0 {
		return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", "No serial ports found", "", "esc close · r refresh"))
	}
	hint := lipgloss.NewStyle().
		Foreground(theme.Palette.Overlay0).
		Render("↑/↓ move · enter select · esc close")
	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, pp.table.View(), hint))
}

func portColumns(width int) []table.Column {
	// Dialog border and padding take 6 columns, cell padding 2 per column
	usable := width - 12
	if usable < 50 {
		usable = 50
	}
	portWidth := usable * 4 / 10
	usbWidth := 10
	descWidth := usable - portWidth - usbWidth
	return []table.Column{
		{Title: "Port", Width: portWidth},
		{Title: "Description", Width: descWidth},
		{Title: "USB ID", Width: usbWidth},
	}
}

func pickerHeight(height int) int {
	h := height - 10
	if h < 3 {
		h = 3
	}
	return h
}
