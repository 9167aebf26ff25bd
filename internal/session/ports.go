package session

import (
	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/pkg/logging"
)

// Enumerator lists the port identifiers currently present.
type Enumerator interface {
	Ports() ([]string, error)
}

// EnumeratorFunc adapts a function to Enumerator.
type EnumeratorFunc func() ([]string, error)

func (f EnumeratorFunc) Ports() ([]string, error) { return f() }

// SystemPorts enumerates the ports of the host.
var SystemPorts Enumerator = EnumeratorFunc(serial.ListPorts)

// PortList is the displayed port list and the current selection.
type PortList struct {
	ports    []string
	selected string
}

// Ports returns the listed identifiers.
func (l *PortList) Ports() []string {
	out := make([]string, len(l.ports))
	copy(out, l.ports)
	return out
}

// Selected returns the selected port, or "" when nothing is selected.
func (l *PortList) Selected() string {
	return l.selected
}

// Select marks port as selected. Selecting a port that is not listed clears
// the selection.
func (l *PortList) Select(port string) {
	l.selected = ""
	for _, p := range l.ports {
		if p == port {
			l.selected = port
			return
		}
	}
}

// Move selects the port delta positions away from the current one, wrapping.
// With nothing selected it starts at the first (or last) port.
func (l *PortList) Move(delta int) string {
	n := len(l.ports)
	if n == 0 {
		l.selected = ""
		return ""
	}
	idx := l.index()
	switch {
	case idx < 0 && delta >= 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	l.selected = l.ports[idx]
	return l.selected
}

// Replace swaps in a freshly enumerated list. The selection is cleared unless
// preserve is set and the selected port is still present.
func (l *PortList) Replace(ports []string, preserve bool) {
	l.ports = append([]string(nil), ports...)
	keep := l.selected
	l.selected = ""
	if preserve && keep != "" {
		l.Select(keep)
	}
}

// Refresh enumerates with e and replaces the list. Enumeration errors are
// logged and leave an empty list.
func (l *PortList) Refresh(e Enumerator, preserve bool) error {
	ports, err := e.Ports()
	if err != nil {
		logging.Warn("ports", "port enumeration failed: %v", err)
		ports = nil
	}
	l.Replace(ports, preserve)
	return err
}

func (l *PortList) index() int {
	for i, p := range l.ports {
		if p == l.selected {
			return i
		}
	}
	return -1
}
