package components

import "strings"

// CommandHistory remembers sent commands for recall with up/down.
type CommandHistory struct {
	entries []string
	max     int

	// pos is the recalled entry, len(entries) while editing a new line
	pos   int
	draft string
}

func NewCommandHistory(max int) *CommandHistory {
	return &CommandHistory{max: max}
}

// Push records a sent command and ends any recall in progress. Blank commands
// and repeats of the newest entry are not recorded.
func (h *CommandHistory) Push(command string) {
	command = strings.TrimSpace(command)
	if command != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != command) {
		h.entries = append(h.entries, command)
		if h.max > 0 && len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.pos = len(h.entries)
	h.draft = ""
}

// Prev returns the next older entry. current is kept as the draft when recall
// starts so Next can bring it back.
func (h *CommandHistory) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos >= len(h.entries) {
		h.pos = len(h.entries)
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next returns the next newer entry, or the draft after the newest one.
func (h *CommandHistory) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		draft := h.draft
		h.draft = ""
		return draft, true
	}
	return h.entries[h.pos], true
}

// Entries returns the recorded commands, oldest first.
func (h *CommandHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
