package session

import (
	"bytes"
	"unicode/utf8"
)

// lineBuffer accumulates received bytes and splits them at '\n'.
type lineBuffer struct {
	pending []byte
	// held is set while flush kept back the start of a multi-byte rune
	held bool
}

// feed appends data and returns every completed line, terminator included.
func (b *lineBuffer) feed(data []byte) [][]byte {
	b.pending = append(b.pending, data...)
	b.held = false

	var lines [][]byte
	for {
		i := bytes.IndexByte(b.pending, '\n')
		if i < 0 {
			break
		}
		line := make([]byte, i+1)
		copy(line, b.pending[:i+1])
		lines = append(lines, line)
		b.pending = b.pending[i+1:]
	}
	if len(b.pending) == 0 {
		b.pending = nil
	}
	return lines
}

// flush returns and discards the incomplete tail, or nil when there is none.
// A trailing partial UTF-8 rune stays buffered for one more flush so a rune
// split across reads is not cut in half.
func (b *lineBuffer) flush() []byte {
	if len(b.pending) == 0 {
		return nil
	}
	cut := len(b.pending)
	if !b.held {
		cut -= partialRune(b.pending)
	}
	b.held = cut < len(b.pending)

	out := make([]byte, cut)
	copy(out, b.pending[:cut])
	b.pending = append([]byte(nil), b.pending[cut:]...)
	if len(b.pending) == 0 {
		b.pending = nil
	}
	if cut == 0 {
		return nil
	}
	return out
}

// holding reports whether the last flush kept back a partial rune.
func (b *lineBuffer) holding() bool {
	return b.held
}

func (b *lineBuffer) buffered() int {
	return len(b.pending)
}

// partialRune returns the length of an incomplete multi-byte rune at the end
// of p, or 0.
func partialRune(p []byte) int {
	for i := 1; i < utf8.UTFMax && i <= len(p); i++ {
		c := p[len(p)-i]
		if !utf8.RuneStart(c) {
			continue
		}
		if c >= utf8.RuneSelf && !utf8.FullRune(p[len(p)-i:]) {
			return i
		}
		return 0
	}
	return 0
}
