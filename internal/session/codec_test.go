package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allbin/serialterm"
)

func TestUTF8Codec(t *testing.T) {
	c, err := NewCodec("")
	require.NoError(t, err)
	assert.Equal(t, "utf-8", c.Name())

	text, err := c.Decode([]byte("temp 21°C\n"))
	require.NoError(t, err)
	assert.Equal(t, "temp 21°C\n", text)

	_, err = c.Decode([]byte{0xff, 0x0a})
	assert.ErrorIs(t, err, serial.ErrDecode)

	out, err := c.Encode("AT")
	require.NoError(t, err)
	assert.Equal(t, []byte("AT"), out)
}

func TestLegacyCodec(t *testing.T) {
	c, err := NewCodec("ISO-8859-1")
	require.NoError(t, err)
	assert.NotEqual(t, "utf-8", c.Name())

	text, err := c.Decode([]byte{'c', 'a', 'f', 0xe9})
	require.NoError(t, err)
	assert.Equal(t, "café", text)

	out, err := c.Encode("café")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, out)
}

func TestUnknownCodec(t *testing.T) {
	_, err := NewCodec("klingon")
	assert.Error(t, err)
}

func TestParseLineEnding(t *testing.T) {
	for in, want := range map[string]LineEnding{
		"":     LineEndingNone,
		"none": LineEndingNone,
		"LF":   LineEndingLF,
		"cr":   LineEndingCR,
		"crlf": LineEndingCRLF,
	} {
		got, err := ParseLineEnding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLineEnding("nl")
	assert.Error(t, err)
	assert.Nil(t, LineEndingNone.Bytes())
}

func TestLineBuffer(t *testing.T) {
	var b lineBuffer
	assert.Empty(t, b.feed([]byte("par")))
	assert.Equal(t, 3, b.buffered())

	lines := b.feed([]byte("tial\r\nnext\nta"))
	require.Len(t, lines, 2)
	assert.Equal(t, "partial\r\n", string(lines[0]))
	assert.Equal(t, "next\n", string(lines[1]))

	assert.Equal(t, "ta", string(b.flush()))
	assert.Nil(t, b.flush())
}

func TestLineBufferHoldsSplitRune(t *testing.T) {
	var b lineBuffer
	assert.Empty(t, b.feed([]byte("caf\xc3")))

	assert.Equal(t, "caf", string(b.flush()))
	assert.True(t, b.holding())
	assert.Equal(t, 1, b.buffered())

	lines := b.feed([]byte("\xa9\n"))
	require.Len(t, lines, 1)
	assert.Equal(t, "café\n", string(lines[0]))
	assert.False(t, b.holding())
}

func TestLineBufferReleasesHeldBytes(t *testing.T) {
	var b lineBuffer
	b.feed([]byte("\xe2\x82"))

	assert.Nil(t, b.flush(), "a lone partial rune waits one more flush")
	assert.Equal(t, "\xe2\x82", string(b.flush()))
	assert.Zero(t, b.buffered())
}

func TestPartialRune(t *testing.T) {
	assert.Zero(t, partialRune([]byte("abc")))
	assert.Zero(t, partialRune([]byte("caf\xc3\xa9")))
	assert.Equal(t, 1, partialRune([]byte("caf\xc3")))
	assert.Equal(t, 2, partialRune([]byte("\xe2\x82")))
	assert.Equal(t, 3, partialRune([]byte("x\xf0\x9f\x98")))
	assert.Zero(t, partialRune([]byte("\xff")))
}
