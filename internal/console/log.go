// Package console holds the terminal's scrollback: an append-only list of
// lines that can be cleared or written out to a file.
package console

import (
	"fmt"
	"os"
	"strings"
)

// Log is the ordered list of sent, received and error lines.
// It is owned by the UI event loop and is not safe for concurrent use.
type Log struct {
	entries  []string
	maxLines int
}

// NewLog returns an empty log. maxLines caps the number of retained entries,
// dropping the oldest; 0 keeps everything.
func NewLog(maxLines int) *Log {
	if maxLines < 0 {
		maxLines = 0
	}
	return &Log{maxLines: maxLines}
}

// Append adds one entry. The entry is stored with exactly one trailing newline.
func (l *Log) Append(line string) {
	l.entries = append(l.entries, strings.TrimRight(line, "\r\n")+"\n")
	if l.maxLines > 0 && len(l.entries) > l.maxLines {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-l.maxLines:]...)
	}
}

// Appendf formats and appends an entry.
func (l *Log) Appendf(format string, args ...interface{}) {
	l.Append(fmt.Sprintf(format, args...))
}

// Clear empties the log.
func (l *Log) Clear() {
	l.entries = nil
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries, each ending in a newline.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lines returns the entries without their trailing newline, for rendering.
func (l *Log) Lines() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = strings.TrimSuffix(e, "\n")
	}
	return out
}

// String returns the accumulated log text.
func (l *Log) String() string {
	return strings.Join(l.entries, "")
}

// SaveToFile writes the full log to path, replacing any existing file.
func (l *Log) SaveToFile(path string) error {
	if path == "" {
		return fmt.Errorf("save log: empty path")
	}
	if err := os.WriteFile(path, []byte(l.String()), 0o644); err != nil {
		return fmt.Errorf("save log to %s: %w", path, err)
	}
	return nil
}
