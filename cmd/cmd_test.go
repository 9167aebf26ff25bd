package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/config"
)

// scriptedConn returns its reply once, then times out on every read.
type scriptedConn struct {
	mu      sync.Mutex
	reply   []byte
	written bytes.Buffer
	closed  bool
}

func (c *scriptedConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, serial.ErrPortClosed
	}
	if len(c.reply) > 0 {
		n := copy(p, c.reply)
		c.reply = c.reply[n:]
		c.mu.Unlock()
		return n, nil
	}
	c.mu.Unlock()
	time.Sleep(2 * time.Millisecond)
	return 0, nil
}

func (c *scriptedConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.written.Write(p)
}

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// withTestConfig installs a default configuration and a fake port opener.
func withTestConfig(t *testing.T, conn *scriptedConn) {
	t.Helper()
	c, err := config.Load(config.New(), writeConfigFile(t, "read_timeout: 5ms\nline_ending: crlf\n"))
	require.NoError(t, err)

	prevCfg, prevOpen := cfg, openPort
	cfg = c
	openPort = func(port string, baud int, _ time.Duration) (serial.Conn, error) {
		if port == "/dev/missing" {
			return nil, &serial.PortOpenError{Port: port, Err: serial.ErrDeviceNotFound}
		}
		return conn, nil
	}
	t.Cleanup(func() {
		cfg, openPort = prevCfg, prevOpen
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		name   string
		info   serial.PortInfo
		filter string
		want   bool
	}{
		{"usb adapter", serial.PortInfo{Name: "ttyUSB0"}, "usb", true},
		{"usb flag", serial.PortInfo{Name: "COM5", IsUSB: true}, "usb", true},
		{"standard", serial.PortInfo{Name: "ttyS0"}, "standard", true},
		{"com port", serial.PortInfo{Name: "COM1"}, "standard", true},
		{"usb is not standard", serial.PortInfo{Name: "COM5", IsUSB: true}, "standard", false},
		{"arm", serial.PortInfo{Name: "ttyAMA0"}, "ARM", true},
		{"unknown filter", serial.PortInfo{Name: "ttyS0"}, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.info
			assert.Equal(t, tt.want, matchesFilter(&info, tt.filter))
		})
	}
}

func TestGetPortType(t *testing.T) {
	assert.Equal(t, "USB Serial", getPortType("ttyUSB0"))
	assert.Equal(t, "USB CDC/ACM", getPortType("ttyACM1"))
	assert.Equal(t, "Standard Serial", getPortType("ttyS0"))
	assert.Equal(t, "COM Port", getPortType("COM3"))
	assert.Equal(t, "Serial Port", getPortType("cu.usbmodem1"))
}

func TestRenderTable(t *testing.T) {
	lookup := func(port string) (*serial.PortInfo, error) {
		if port == "COM9" {
			return nil, errors.New("boom")
		}
		return &serial.PortInfo{
			Name: port, Path: port, Description: "FT232R",
			IsUSB: true, VendorID: "0403", ProductID: "6001",
		}, nil
	}

	out := renderTable([]string{"COM3", "COM9"}, lookup)
	assert.Contains(t, out, "Port")
	assert.Contains(t, out, "COM3")
	assert.Contains(t, out, "FT232R")
	assert.Contains(t, out, "0403:6001")
	assert.Contains(t, out, "Error: boom")
}

func TestWriteConfig(t *testing.T) {
	c := config.Config{Port: "COM3", BaudRate: 19200, RefreshInterval: 5 * time.Second}

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, c))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "COM3", decoded["port"])
	assert.Equal(t, 19200, decoded["baud_rate"])
	assert.Equal(t, "5s", decoded["refresh_interval"])
}

func TestSendData(t *testing.T) {
	conn := &scriptedConn{reply: []byte("OK\r\n")}
	withTestConfig(t, conn)

	var out bytes.Buffer
	require.NoError(t, sendData(&out, "/dev/ttyUSB0", "  AT  ", 100*time.Millisecond))

	assert.Equal(t, "AT\r\n", conn.written.String())
	assert.Contains(t, out.String(), "Sent: AT")
	assert.Contains(t, out.String(), "Received: OK")
}

func TestSendDataOpenFailure(t *testing.T) {
	withTestConfig(t, &scriptedConn{})

	var out bytes.Buffer
	err := sendData(&out, "/dev/missing", "AT", 0)
	assert.ErrorIs(t, err, serial.ErrPortOpen)
	assert.ErrorIs(t, err, serial.ErrDeviceNotFound)
}

func TestListenSavesLog(t *testing.T) {
	conn := &scriptedConn{reply: []byte("booting\nready\n")}
	withTestConfig(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	output := filepath.Join(t.TempDir(), "boot")
	var out bytes.Buffer
	require.NoError(t, listen(ctx, &out, "/dev/ttyUSB0", listenOptions{output: output}))

	assert.Contains(t, out.String(), "Received: booting\n")
	assert.Contains(t, out.String(), "Received: ready\n")

	data, err := os.ReadFile(output + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Received: booting\nReceived: ready\n", string(data))
}

func TestListenOpenFailure(t *testing.T) {
	withTestConfig(t, &scriptedConn{})

	err := listen(context.Background(), &bytes.Buffer{}, "/dev/missing", listenOptions{})
	assert.ErrorIs(t, err, serial.ErrPortOpen)
}

func TestPromptForDataWritesToOutput(t *testing.T) {
	var out bytes.Buffer
	data := promptForData(&out, bytes.NewBufferString("AT+GMR\nignored\n"))

	assert.Equal(t, "AT+GMR", data)
	assert.Contains(t, out.String(), "Enter data to send: ")
}
