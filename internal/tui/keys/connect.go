package keys

import "github.com/charmbracelet/bubbles/key"

// ConnectKeys includes terminal keys plus connection, port and send bindings
type ConnectKeys struct {
	TerminalKeys
	Enter     key.Binding
	Connect   key.Binding
	Ports     key.Binding
	NextBaud  key.Binding
	PrevBaud  key.Binding
	Refresh   key.Binding
	Settings  key.Binding
	Left      key.Binding
	Right     key.Binding
	NightMode key.Binding
	HistUp    key.Binding
	HistDown  key.Binding
}

func NewConnectKeys() ConnectKeys {
	return ConnectKeys{
		TerminalKeys: NewTerminalKeys(),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send message"),
		),
		Connect: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "connect"),
		),
		Ports: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "select port"),
		),
		NextBaud: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b/B", "baud rate"),
		),
		PrevBaud: key.NewBinding(
			key.WithKeys("B"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh ports"),
		),
		Settings: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "settings"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		NightMode: key.NewBinding(
			key.WithKeys("n", " "),
		),
		HistUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous command"),
		),
		HistDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next command"),
		),
	}
}

// SetConnected relabels the connect key for the connection state.
func (k *ConnectKeys) SetConnected(connected bool) {
	if connected {
		k.Connect.SetHelp("t", "disconnect")
	} else {
		k.Connect.SetHelp("t", "connect")
	}
}

func (k ConnectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.InsertMode, k.Connect, k.Ports, k.Enter, k.Quit}
}

func (k ConnectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InsertMode, k.Escape, k.Enter, k.HistUp, k.HistDown},
		{k.Connect, k.Ports, k.NextBaud, k.Refresh, k.Settings},
		{k.Clear, k.ToggleHex, k.Save, k.Copy},
		{k.Up, k.Down, k.GotoTop, k.GotoBottom},
		{k.Help, k.Quit},
	}
}
