package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/settings"
	"github.com/allbin/serialterm/internal/tui/styles"
)

func testTheme() styles.Theme {
	return styles.NewTheme(settings.DefaultTheme, settings.DefaultBackground)
}

func TestCommandHistoryRecall(t *testing.T) {
	h := NewCommandHistory(10)
	h.Push("AT")
	h.Push("AT+GMR")
	h.Push("AT+GMR") // repeat is not recorded
	h.Push("   ")

	assert.Equal(t, []string{"AT", "AT+GMR"}, h.Entries())

	cmd, ok := h.Prev("draft")
	require.True(t, ok)
	assert.Equal(t, "AT+GMR", cmd)

	cmd, _ = h.Prev("ignored")
	assert.Equal(t, "AT", cmd)
	cmd, _ = h.Prev("ignored")
	assert.Equal(t, "AT", cmd, "stays on the oldest entry")

	cmd, _ = h.Next()
	assert.Equal(t, "AT+GMR", cmd)
	cmd, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "draft", cmd)

	_, ok = h.Next()
	assert.False(t, ok)
}

func TestCommandHistoryCap(t *testing.T) {
	h := NewCommandHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	assert.Equal(t, []string{"b", "c"}, h.Entries())

	_, ok := NewCommandHistory(2).Prev("")
	assert.False(t, ok)
}

func TestInputSentClearsAndRecords(t *testing.T) {
	in := NewInput("")
	in.SetValue("AT")
	in.Sent()

	assert.Empty(t, in.Value())
	assert.Equal(t, []string{"AT"}, in.History())

	in.SetValue("half typed")
	in.RecallPrev()
	assert.Equal(t, "AT", in.Value())
	in.RecallNext()
	assert.Equal(t, "half typed", in.Value())
}

func TestFormatLine(t *testing.T) {
	f := NewLineFormatter(testTheme())

	sent := f.FormatLine("Sent: AT")
	assert.Contains(t, sent, "TX")
	assert.Contains(t, sent, "AT")

	received := f.FormatLine("Received: OK\r")
	assert.Contains(t, received, "RX")
	assert.Contains(t, received, "OK·")

	assert.Contains(t, f.FormatLine("Error: Serial port not open"), "✗ Error: Serial port not open")
	assert.Equal(t, "Saved", f.FormatLine("Saved"))

	f.ToggleHex()
	assert.True(t, f.GetDisplayMode().ShowHex)
	assert.Contains(t, f.FormatLine("Sent: AT"), "41 54")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", formatBytes(512))
	assert.Equal(t, "1.5K", formatBytes(1536))
	assert.Equal(t, "2.0M", formatBytes(2<<20))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "00:00", formatUptime(-time.Second))
	assert.Equal(t, "01:05", formatUptime(65*time.Second+300*time.Millisecond))
	assert.Equal(t, "2:00:03", formatUptime(2*time.Hour+3*time.Second))
}

func TestStatusBarConnectionStatus(t *testing.T) {
	sb := NewStatusBar()
	sb.SetConnected("COM3")
	assert.Equal(t, "Connected to COM3", sb.Status())
	assert.NoError(t, sb.Err())

	sb.SetStatus("Error: Invalid Baud Rate", serial.ErrInvalidBaudRate)
	assert.ErrorIs(t, sb.Err(), serial.ErrInvalidBaudRate)

	sb.SetDisconnected()
	assert.Equal(t, "Disconnected", sb.Status())
}

func TestPortPickerSelection(t *testing.T) {
	pp := NewPortPicker(80, 20, testTheme())
	assert.Empty(t, pp.Selected())

	pp.SetPorts([]serial.PortInfo{
		{Name: "COM1", Path: "COM1", Description: "Communications Port"},
		{Name: "COM3", Path: "COM3", Description: "USB Serial", IsUSB: true, VendorID: "0403", ProductID: "6001"},
	}, "COM3")

	assert.Equal(t, 2, pp.Len())
	assert.Equal(t, "COM3", pp.Selected())
	assert.Contains(t, pp.View(testTheme()), "0403:6001")
}

func TestSettingsDialogCyclesThemes(t *testing.T) {
	d := NewSettingsDialog()
	d.Open("elegance")
	d.NextTheme()
	assert.Equal(t, "aqua", d.PendingTheme())
	d.PrevTheme()
	d.PrevTheme()
	assert.Equal(t, "scidblue", d.PendingTheme())
}

func TestInputAcceptsLongCommands(t *testing.T) {
	in := NewInput("")
	long := strings.Repeat("A", 1000)
	in.SetValue(long)
	assert.Equal(t, long, in.Value())
}
