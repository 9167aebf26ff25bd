package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendNormalizesTerminator(t *testing.T) {
	log := NewLog(0)
	log.Append("Received: hello\n")
	log.Append("Received: crlf\r\n")
	log.Append("Sent: AT")

	assert.Equal(t, []string{"Received: hello\n", "Received: crlf\n", "Sent: AT\n"}, log.Entries())
	assert.Equal(t, []string{"Received: hello", "Received: crlf", "Sent: AT"}, log.Lines())
	assert.Equal(t, 3, log.Len())
}

func TestSaveAfterClearWritesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	log := NewLog(0)
	log.Append("A")
	log.Clear()

	require.NoError(t, log.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSaveWritesAccumulatedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer"), 0o644))

	log := NewLog(0)
	log.Append("A")
	log.Append("B")
	require.NoError(t, log.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", string(data))
	assert.Equal(t, log.String(), string(data))
}

func TestSaveFailureIsReturned(t *testing.T) {
	log := NewLog(0)
	log.Append("A")

	err := log.SaveToFile(filepath.Join(t.TempDir(), "missing", "log.txt"))
	assert.Error(t, err)
	assert.Error(t, log.SaveToFile(""))
	assert.Equal(t, 1, log.Len(), "a failed save must not touch the log")
}

func TestMaxLinesDropsOldest(t *testing.T) {
	log := NewLog(2)
	log.Append("one")
	log.Append("two")
	log.Appendf("%s", "three")

	assert.Equal(t, "two\nthree\n", log.String())
}

func TestUnboundedByDefault(t *testing.T) {
	log := NewLog(-1)
	for i := 0; i < 1000; i++ {
		log.Appendf("line %d", i)
	}
	assert.Equal(t, 1000, log.Len())
}
