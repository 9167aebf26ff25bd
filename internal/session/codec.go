package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"github.com/allbin/serialterm"
)

// Codec converts between log text and the bytes on the wire.
type Codec struct {
	name string
	enc  encoding.Encoding // nil means strict UTF-8
}

// NewCodec returns the codec for an encoding label such as "utf-8",
// "iso-8859-1" or "shift_jis". An empty label selects UTF-8.
func NewCodec(label string) (*Codec, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf-8", "utf8":
		return &Codec{name: "utf-8"}, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", label)
	}
	if name == "utf-8" {
		return &Codec{name: name}, nil
	}
	return &Codec{name: name, enc: enc}, nil
}

// Name returns the canonical encoding name.
func (c *Codec) Name() string {
	return c.name
}

// Decode converts received bytes to text. Malformed input yields ErrDecode.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", serial.ErrDecode
		}
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", serial.ErrDecode, err)
	}
	return string(out), nil
}

// Encode converts text to the bytes written to the port.
func (c *Codec) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		return []byte(text), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", c.name, err)
	}
	return out, nil
}

// LineEnding is appended to every sent line.
type LineEnding string

const (
	LineEndingNone LineEnding = "none"
	LineEndingLF   LineEnding = "lf"
	LineEndingCR   LineEnding = "cr"
	LineEndingCRLF LineEnding = "crlf"
)

// ParseLineEnding accepts none, lf, cr and crlf; empty means none.
func ParseLineEnding(s string) (LineEnding, error) {
	switch LineEnding(strings.ToLower(strings.TrimSpace(s))) {
	case "", LineEndingNone:
		return LineEndingNone, nil
	case LineEndingLF:
		return LineEndingLF, nil
	case LineEndingCR:
		return LineEndingCR, nil
	case LineEndingCRLF:
		return LineEndingCRLF, nil
	}
	return LineEndingNone, fmt.Errorf("invalid line ending %q (want none, lf, cr or crlf)", s)
}

// Bytes returns the terminator bytes.
func (l LineEnding) Bytes() []byte {
	switch l {
	case LineEndingLF:
		return []byte("\n")
	case LineEndingCR:
		return []byte("\r")
	case LineEndingCRLF:
		return []byte("\r\n")
	}
	return nil
}
