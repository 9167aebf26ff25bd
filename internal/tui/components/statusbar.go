package components

import (
	"fmt"
	"time"

	"github.com/allbin/serialterm/internal/session"
	"github.com/allbin/serialterm/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	maxPortWidth    = 24
	minStatusWidth  = 12
	noPortSelection = "no port"
)

type StatusBar struct {
	port   string
	baud   string
	status string
	err    error
	width  int
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		status: "Disconnected",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetSelection updates the port and baud shown while disconnected.
func (sb *StatusBar) SetSelection(port, baud string) {
	sb.port = port
	sb.baud = baud
}

// SetStatus shows a status message; a non-nil err styles it as an error.
func (sb *StatusBar) SetStatus(status string, err error) {
	sb.status = status
	sb.err = err
}

func (sb *StatusBar) Status() string {
	return sb.status
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func (sb *StatusBar) SetConnected(port string) {
	sb.status = "Connected to " + port
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected() {
	sb.status = "Disconnected"
	sb.err = nil
}

// View renders mode, port, connection indicator, status message, and on the
// right the line settings, byte counters and clock.
func (sb *StatusBar) View(theme styles.Theme, inputMode string, connected bool, stats session.Stats, now time.Time) string {
	p := theme.Palette
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	// Section 1: Mode indicator (like NORMAL in nvim)
	modeStyle := lipgloss.NewStyle().
		Foreground(p.Base).
		Background(p.Info).
		Bold(true).
		Padding(0, 1)
	if inputMode == "INSERT" {
		modeStyle = modeStyle.Background(p.Green)
	}
	mode := modeStyle.Render(inputMode)

	// Section 2: Port
	portName := sb.port
	if connected {
		portName = stats.Port
	}
	if portName == "" {
		portName = noPortSelection
	}
	port := lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1).
		Render(runewidth.Truncate(portName, maxPortWidth, "…"))

	// Section 3: Single character connection indicator
	var connIndicator string
	if sb.err != nil {
		connIndicator = theme.StatusStyle(styles.StatusError).Render("✗")
	} else if connected {
		connIndicator = theme.StatusStyle(styles.StatusConnected).Render("●")
	} else {
		connIndicator = theme.StatusStyle(styles.StatusDisconnected).Render("○")
	}

	dividerStyle := lipgloss.NewStyle().
		Foreground(p.Surface2).
		Padding(0, 1)
	divider := dividerStyle.Render("│")

	// Right side: baud, counters, clock
	baud := sb.baud
	if connected {
		baud = fmt.Sprintf("%d", stats.BaudRate)
	}
	connInfo := fmt.Sprintf("⚡ %s baud", baud)
	if connected {
		connInfo += fmt.Sprintf(" ↑%s ↓%s %s",
			formatBytes(stats.BytesSent),
			formatBytes(stats.BytesReceived),
			formatUptime(now.Sub(stats.ConnectedAt)))
	}
	connectionDetails := lipgloss.NewStyle().
		Foreground(p.Subtext0).
		Padding(0, 1).
		Render(connInfo)

	clock := lipgloss.NewStyle().
		Foreground(p.Subtext1).
		Padding(0, 1).
		Render(now.Format("15:04:05"))

	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, divider, connectionDetails, divider, clock)
	leftFixed := lipgloss.JoinHorizontal(lipgloss.Left, mode, port, connIndicator, divider)

	// Section 4: Status message, truncated to the space left
	statusRoom := terminalWidth - lipgloss.Width(leftFixed) - lipgloss.Width(rightSide)
	if statusRoom < minStatusWidth {
		statusRoom = minStatusWidth
	}
	statusStyle := lipgloss.NewStyle().Foreground(p.Text)
	if sb.err != nil {
		statusStyle = lipgloss.NewStyle().Foreground(p.Red).Bold(true)
	}
	status := statusStyle.Render(runewidth.Truncate(sb.status, statusRoom, "…"))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, leftFixed, status)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface0).
		Width(terminalWidth)

	content := lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
	return statusBarStyle.Render(content)
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
