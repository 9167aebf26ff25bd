package session

import "fmt"

// EventKind identifies what the read loop observed.
type EventKind int

const (
	// EventReceived carries one decoded line
	EventReceived EventKind = iota
	// EventDecodeError reports bytes that could not be decoded
	EventDecodeError
	// EventReadError reports a failed read; the connection has been dropped
	EventReadError
)

func (k EventKind) String() string {
	switch k {
	case EventReceived:
		return "received"
	case EventDecodeError:
		return "decode-error"
	case EventReadError:
		return "read-error"
	default:
		return "unknown"
	}
}

// Event is delivered on Session.Events to the UI loop.
type Event struct {
	Kind EventKind
	Port string
	Text string
	Err  error
}

// LogLine renders the event as a console log entry.
func (e Event) LogLine() string {
	switch e.Kind {
	case EventReceived:
		return "Received: " + e.Text
	case EventDecodeError:
		return "Error: Unable to decode received data"
	case EventReadError:
		return fmt.Sprintf("Error: Connection to %s lost: %v", e.Port, e.Err)
	}
	return ""
}
