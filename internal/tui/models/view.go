package models

import (
	"github.com/charmbracelet/lipgloss"
)

func (m *SerialModel) View() string {
	var content string
	if m.ready {
		content = m.terminal.View()
	} else {
		content = "Initializing..."
	}

	switch m.overlay {
	case overlayPorts:
		content = m.placeOverlay(m.picker.View(m.theme))
	case overlaySettings:
		content = m.placeOverlay(m.dialog.View(m.theme, m.settings.NightMode))
	case overlaySave:
		content = m.placeOverlay(m.savePrompt.View(m.theme))
	}

	input := m.input.ViewWithMode(m.theme, m.inputMode == InputModeInsert, m.session.CanSend())
	statusBar := m.statusBar.View(m.theme, m.inputMode.String(), m.session.CanSend(), m.session.Stats(), m.opts.Now())
	helpView := m.help.View(m.keys)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.ContentBorderStyle.Render(content),
		input,
		statusBar,
		helpView,
	)

	if !m.ready {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, view,
		lipgloss.WithWhitespaceBackground(m.theme.Background))
}

// placeOverlay centers a dialog in the console area
func (m *SerialModel) placeOverlay(dialog string) string {
	vp := m.terminal.GetViewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return dialog
	}
	return lipgloss.Place(vp.Width, vp.Height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceBackground(m.theme.Background))
}
