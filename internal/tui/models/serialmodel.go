package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/console"
	"github.com/allbin/serialterm/internal/session"
	"github.com/allbin/serialterm/internal/settings"
	"github.com/allbin/serialterm/internal/tui/components"
	"github.com/allbin/serialterm/internal/tui/keys"
	"github.com/allbin/serialterm/internal/tui/styles"
	"github.com/allbin/serialterm/pkg/logging"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// InputMode represents the current input mode (vim-like)
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeInsert
)

func (m InputMode) String() string {
	switch m {
	case InputModeInsert:
		return "INSERT"
	default:
		return "NORMAL"
	}
}

type overlay int

const (
	overlayNone overlay = iota
	overlayPorts
	overlaySettings
	overlaySave
)

// Log lines written for rejected sends
const (
	msgInvalidInput = "Error: Please enter valid data"
	msgNotOpen      = "Error: Serial port not open"
)

type refreshTickMsg struct{}

type sessionEventMsg struct {
	event session.Event
}

// Options configure the terminal model. Zero values select the defaults.
type Options struct {
	RefreshInterval   time.Duration
	PreserveSelection bool
	MaxLogLines       int
	// AutoConnect connects to the configured port on start
	AutoConnect bool

	Enumerator session.Enumerator
	PortInfo   func(path string) (*serial.PortInfo, error)
	Clipboard  func(text string) error
	Now        func() time.Time
}

const DefaultRefreshInterval = 5 * time.Second

// SerialModel is the terminal: port and baud selection, connect control,
// console log, input line and the settings and save dialogs.
type SerialModel struct {
	session  *session.Session
	settings *settings.Settings
	log      *console.Log
	ports    session.PortList
	opts     Options

	inputMode InputMode
	overlay   overlay
	listed    bool
	ready     bool
	width     int
	height    int
	theme     styles.Theme

	terminal   *components.Terminal
	input      *components.Input
	statusBar  *components.StatusBar
	picker     *components.PortPicker
	dialog     *components.SettingsDialog
	savePrompt *components.SavePrompt
	help       help.Model
	keys       keys.ConnectKeys
}

func NewSerialModel(sess *session.Session, st *settings.Settings, opts Options) *SerialModel {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.Enumerator == nil {
		opts.Enumerator = session.SystemPorts
	}
	if opts.PortInfo == nil {
		opts.PortInfo = serial.GetPortInfo
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	theme := styles.NewTheme(st.Theme, st.Background)
	m := &SerialModel{
		session:    sess,
		settings:   st,
		log:        console.NewLog(opts.MaxLogLines),
		opts:       opts,
		inputMode:  InputModeNormal,
		theme:      theme,
		terminal:   components.NewTerminal(0, 0, theme), // Will be properly sized by WindowSizeMsg
		input:      components.NewInput("Type a command and press Enter to send..."),
		statusBar:  components.NewStatusBar(),
		picker:     components.NewPortPicker(80, 20, theme),
		dialog:     components.NewSettingsDialog(),
		savePrompt: components.NewSavePrompt(),
		help:       help.New(),
		keys:       keys.NewConnectKeys(),
	}
	m.syncSelection()
	return m
}

func (m *SerialModel) Init() tea.Cmd {
	if m.opts.AutoConnect && m.settings.Port != "" {
		m.toggleConnection()
	}

	m.refreshPorts(m.opts.PreserveSelection)

	return tea.Batch(m.scheduleRefresh(), m.waitForEvent())
}

func (m *SerialModel) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// waitForEvent hands the next session event to the event loop
func (m *SerialModel) waitForEvent() tea.Cmd {
	events := m.session.Events()
	return func() tea.Msg {
		return sessionEventMsg{event: <-events}
	}
}

func (m *SerialModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true

	case refreshTickMsg:
		m.refreshPorts(m.opts.PreserveSelection)
		return m, m.scheduleRefresh()

	case sessionEventMsg:
		m.handleEvent(msg.event)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		switch m.overlay {
		case overlayPorts:
			return m, m.updatePorts(msg)
		case overlaySettings:
			return m, m.updateSettings(msg)
		case overlaySave:
			return m, m.updateSave(msg)
		}

		if m.inputMode == InputModeInsert {
			return m, m.updateInsert(msg)
		}
		return m, m.updateNormal(msg)
	}

	var cmd tea.Cmd
	_, cmd = m.terminal.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *SerialModel) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Cleanup()
		return tea.Quit

	case key.Matches(msg, m.keys.InsertMode):
		m.inputMode = InputModeInsert
		return m.input.Focus()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)

	case key.Matches(msg, m.keys.Connect):
		m.toggleConnection()

	case key.Matches(msg, m.keys.Ports):
		m.openPortPicker()

	case key.Matches(msg, m.keys.NextBaud):
		m.settings.CycleBaud(1)
		m.syncSelection()

	case key.Matches(msg, m.keys.PrevBaud):
		m.settings.CycleBaud(-1)
		m.syncSelection()

	case key.Matches(msg, m.keys.Refresh):
		m.refreshPorts(m.opts.PreserveSelection)
		m.statusBar.SetStatus(fmt.Sprintf("Found %d port(s)", len(m.ports.Ports())), nil)

	case key.Matches(msg, m.keys.Clear):
		m.log.Clear()
		m.terminal.Clear()

	case key.Matches(msg, m.keys.ToggleHex):
		m.terminal.ToggleHex()

	case key.Matches(msg, m.keys.Save):
		m.overlay = overlaySave
		return m.savePrompt.Open(console.DefaultFileName(m.opts.Now()))

	case key.Matches(msg, m.keys.Copy):
		m.copyLog()

	case key.Matches(msg, m.keys.Settings):
		m.dialog.Open(m.settings.Theme)
		m.overlay = overlaySettings

	case key.Matches(msg, m.keys.Up):
		m.terminal.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.terminal.ScrollDown()
	case key.Matches(msg, m.keys.GotoTop):
		m.terminal.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.terminal.GotoBottom()
	}
	return nil
}

func (m *SerialModel) updateInsert(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.inputMode = InputModeNormal
		m.input.Blur()
		return nil
	case key.Matches(msg, m.keys.Enter):
		m.send()
		return nil
	case key.Matches(msg, m.keys.HistUp):
		m.input.RecallPrev()
		return nil
	case key.Matches(msg, m.keys.HistDown):
		m.input.RecallNext()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *SerialModel) updatePorts(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.overlay = overlayNone
		return nil
	case key.Matches(msg, m.keys.Enter):
		m.ports.Select(m.picker.Selected())
		m.syncSelection()
		m.overlay = overlayNone
		return nil
	case key.Matches(msg, m.keys.Refresh):
		m.refreshPorts(m.opts.PreserveSelection)
		m.picker.SetPorts(m.portInfos(), m.settings.Port)
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

func (m *SerialModel) updateSettings(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.overlay = overlayNone
	case key.Matches(msg, m.keys.Left):
		m.dialog.PrevTheme()
	case key.Matches(msg, m.keys.Right):
		m.dialog.NextTheme()
	case key.Matches(msg, m.keys.NightMode):
		m.settings.ToggleNightMode()
		m.applyTheme()
	case key.Matches(msg, m.keys.Enter):
		applied := m.settings.SetTheme(m.dialog.PendingTheme())
		m.applyTheme()
		m.statusBar.SetStatus("Theme: "+applied, nil)
		m.overlay = overlayNone
	}
	return nil
}

func (m *SerialModel) updateSave(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.savePrompt.Close()
		m.overlay = overlayNone
		return nil
	case key.Matches(msg, m.keys.Enter):
		m.saveLog(m.savePrompt.Value())
		m.savePrompt.Close()
		m.overlay = overlayNone
		return nil
	}

	var cmd tea.Cmd
	m.savePrompt, cmd = m.savePrompt.Update(msg)
	return cmd
}

func (m *SerialModel) handleEvent(ev session.Event) {
	m.appendLog(ev.LogLine())
	if ev.Kind == session.EventReadError {
		m.keys.SetConnected(m.session.CanSend())
		m.statusBar.SetStatus(fmt.Sprintf("Error: connection to %s lost", ev.Port), ev.Err)
	}
}

func (m *SerialModel) toggleConnection() {
	state, err := m.session.Toggle(m.settings.Port, m.settings.BaudRate)
	if err != nil {
		m.statusBar.SetStatus(connectionStatus(err), err)
		return
	}
	m.keys.SetConnected(state == session.Connected)
	if state == session.Connected {
		m.statusBar.SetConnected(m.settings.Port)
	} else {
		m.statusBar.SetDisconnected()
	}
}

func connectionStatus(err error) string {
	switch {
	case errors.Is(err, serial.ErrInvalidBaudRate):
		return "Error: Invalid Baud Rate"
	case errors.Is(err, serial.ErrNoPortSelected):
		return "Error: Please select a COM port"
	default:
		return "Error: " + err.Error()
	}
}

// send writes the input line. The input is cleared only when the line was sent.
func (m *SerialModel) send() {
	value := m.input.Value()
	line, err := m.session.Send(value)
	switch {
	case errors.Is(err, serial.ErrEmptyInput):
		m.appendLog(msgInvalidInput)
	case errors.Is(err, serial.ErrNotConnected):
		m.appendLog(msgNotOpen)
	case err != nil:
		m.appendLog("Error: " + err.Error())
		m.statusBar.SetStatus("Error: send failed", err)
	default:
		m.appendLog(line)
		m.input.Sent()
	}
}

func (m *SerialModel) saveLog(path string) {
	path = console.WithDefaultExtension(path)
	if path == "" {
		m.statusBar.SetStatus("Save cancelled", nil)
		return
	}
	if err := m.log.SaveToFile(path); err != nil {
		logging.Error("tui", err, "failed to save log")
		m.statusBar.SetStatus("Error: could not save log", err)
		return
	}
	logging.Info("tui", "saved %d log lines to %s", m.log.Len(), path)
	m.statusBar.SetStatus("Saved log to "+path, nil)
}

func (m *SerialModel) copyLog() {
	if err := m.opts.Clipboard(m.log.String()); err != nil {
		logging.Warn("tui", "clipboard copy failed: %v", err)
		m.statusBar.SetStatus("Error: could not copy log", err)
		return
	}
	m.statusBar.SetStatus(fmt.Sprintf("Copied %d line(s) to clipboard", m.log.Len()), nil)
}

func (m *SerialModel) refreshPorts(preserve bool) {
	// Refresh logs enumeration failures and leaves an empty list
	_ = m.ports.Refresh(m.opts.Enumerator, preserve)
	if !m.listed {
		// A port configured at startup stays selected if it is present
		m.ports.Select(m.settings.Port)
		m.listed = true
	}
	m.syncSelection()
}

func (m *SerialModel) openPortPicker() {
	m.picker.SetPorts(m.portInfos(), m.settings.Port)
	if m.width > 0 {
		m.picker.SetSize(m.width, m.height)
	}
	m.overlay = overlayPorts
}

func (m *SerialModel) portInfos() []serial.PortInfo {
	ports := m.ports.Ports()
	infos := make([]serial.PortInfo, 0, len(ports))
	for _, p := range ports {
		info, err := m.opts.PortInfo(p)
		if err != nil || info == nil {
			infos = append(infos, serial.PortInfo{Name: filepath.Base(p), Path: p, Description: "Serial Port"})
			continue
		}
		infos = append(infos, *info)
	}
	return infos
}

// syncSelection mirrors the port list selection into the settings and the
// status bar. A port set before the first listing is kept until then.
func (m *SerialModel) syncSelection() {
	if m.listed {
		m.settings.Port = m.ports.Selected()
	}
	m.statusBar.SetSelection(m.settings.Port, m.settings.BaudRate)
}

func (m *SerialModel) applyTheme() {
	m.theme = styles.NewTheme(m.settings.Theme, m.settings.Background)
	m.terminal.SetTheme(m.theme)
	m.picker.SetTheme(m.theme)
}

func (m *SerialModel) appendLog(line string) {
	m.log.Append(line)
	m.terminal.SetLines(m.log.Lines())
}

func (m *SerialModel) resize(width, height int) {
	m.width = width
	m.height = height

	// Input area height (includes border), status bar and content border
	verticalMarginHeight := 3 + 1 + 1 + m.helpHeight()
	m.terminal.SetSize(width, height-verticalMarginHeight)
	m.input.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.picker.SetSize(width, height)
	m.help.Width = width
}

func (m *SerialModel) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 1
	for _, column := range m.keys.FullHelp() {
		if len(column) > rows {
			rows = len(column)
		}
	}
	return rows
}

// Cleanup closes the connection
func (m *SerialModel) Cleanup() {
	if err := m.session.Close(); err != nil {
		logging.Warn("tui", "closing session: %v", err)
	}
}

func (m *SerialModel) Log() *console.Log {
	return m.log
}

func (m *SerialModel) Settings() *settings.Settings {
	return m.settings
}

func (m *SerialModel) GetInputMode() InputMode {
	return m.inputMode
}

func (m *SerialModel) IsReady() bool {
	return m.ready
}
