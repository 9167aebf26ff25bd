// Package settings holds the process-wide terminal settings edited through the
// settings dialog: baud rate, selected port, theme and night mode.
package settings

import (
	"strconv"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/pkg/logging"
)

const (
	DefaultTheme = "radiance"
	// FallbackTheme is used when a requested theme is not available
	FallbackTheme = "default"

	DefaultBackground = "SystemButtonFace"
	NightBackground   = "#2E2E2E"
)

// Themes lists the selectable themes, in dialog order
var Themes = []string{"aqua", "radiance", "scidblue", "elegance"}

// BaudRates lists the selectable baud rates, in dialog order
func BaudRates() []string {
	rates := make([]string, len(serial.StandardBaudRates))
	for i, r := range serial.StandardBaudRates {
		rates[i] = strconv.Itoa(r)
	}
	return rates
}

// Settings is mutated only by the UI event loop.
type Settings struct {
	BaudRate   string
	Port       string
	Theme      string
	NightMode  bool
	Background string

	dayBackground string
}

// New returns settings with the first baud rate and the default theme.
func New() *Settings {
	return &Settings{
		BaudRate:   BaudRates()[0],
		Theme:      DefaultTheme,
		Background: DefaultBackground,
	}
}

// SetTheme selects a theme. Unknown names fall back to FallbackTheme; the
// applied name is returned.
func (s *Settings) SetTheme(name string) string {
	if !IsTheme(name) {
		logging.Warn("settings", "theme %q not available, using %s", name, FallbackTheme)
		name = FallbackTheme
	}
	s.Theme = name
	return name
}

// IsTheme reports whether name is one of Themes or the fallback theme.
func IsTheme(name string) bool {
	if name == FallbackTheme {
		return true
	}
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// SetNightMode switches the night background on or off. Switching off restores
// the background that was active when night mode was switched on.
func (s *Settings) SetNightMode(on bool) {
	if on == s.NightMode {
		return
	}
	if on {
		s.dayBackground = s.Background
		s.Background = NightBackground
	} else {
		s.Background = s.dayBackground
	}
	s.NightMode = on
}

// ToggleNightMode flips night mode and returns the new state.
func (s *Settings) ToggleNightMode() bool {
	s.SetNightMode(!s.NightMode)
	return s.NightMode
}

// CycleBaud moves the baud selection by delta positions, wrapping around. A
// baud rate outside the list restarts from the first entry.
func (s *Settings) CycleBaud(delta int) string {
	s.BaudRate = cycle(BaudRates(), s.BaudRate, delta)
	return s.BaudRate
}

// NextTheme returns the theme delta positions away from current, wrapping.
func NextTheme(current string, delta int) string {
	return cycle(Themes, current, delta)
}

func cycle(values []string, current string, delta int) string {
	if len(values) == 0 {
		return current
	}
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return values[0]
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}
