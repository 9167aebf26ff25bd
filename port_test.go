package serial

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	bugst "go.bug.st/serial"
)

// nativeStub stands in for a go.bug.st/serial port
type nativeStub struct {
	bugst.Port
	timeout time.Duration
	written []byte
	closed  int
}

func (n *nativeStub) SetReadTimeout(t time.Duration) error {
	n.timeout = t
	return nil
}

func (n *nativeStub) Read(buf []byte) (int, error) {
	return copy(buf, "ok\n"), nil
}

func (n *nativeStub) Write(data []byte) (int, error) {
	n.written = append(n.written, data...)
	return len(data), nil
}

func (n *nativeStub) Close() error {
	n.closed++
	return nil
}

func stubOpen(t *testing.T, stub *nativeStub, gotMode **bugst.Mode) {
	t.Helper()
	original := openNative
	openNative = func(path string, mode *bugst.Mode) (bugst.Port, error) {
		if gotMode != nil {
			*gotMode = mode
		}
		return stub, nil
	}
	t.Cleanup(func() { openNative = original })
}

func TestOpenAppliesConfig(t *testing.T) {
	stub := &nativeStub{}
	var mode *bugst.Mode
	stubOpen(t, stub, &mode)

	port, err := Open("/dev/ttyUSB0",
		WithBaudRate(19200),
		WithParity(ParityOdd),
		WithStopBits(2),
		WithReadTimeout(0),
	)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer port.Close()

	if mode.BaudRate != 19200 {
		t.Errorf("Expected baud 19200, got %d", mode.BaudRate)
	}
	if mode.Parity != bugst.OddParity {
		t.Errorf("Expected odd parity, got %v", mode.Parity)
	}
	if mode.StopBits != bugst.TwoStopBits {
		t.Errorf("Expected two stop bits, got %v", mode.StopBits)
	}
	if stub.timeout != 0 {
		t.Errorf("Expected non-blocking read timeout, got %v", stub.timeout)
	}
	if port.Path() != "/dev/ttyUSB0" {
		t.Errorf("Unexpected path %s", port.Path())
	}
}

func TestPortReadWriteClose(t *testing.T) {
	stub := &nativeStub{}
	stubOpen(t, stub, nil)

	port, err := Open("COM3")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := port.Write([]byte("AT")); err != nil {
		t.Errorf("Write failed: %v", err)
	}
	if string(stub.written) != "AT" {
		t.Errorf("Expected AT written, got %q", stub.written)
	}

	buf := make([]byte, 8)
	n, err := port.Read(buf)
	if err != nil || string(buf[:n]) != "ok\n" {
		t.Errorf("Read = %q, %v", buf[:n], err)
	}

	if err := port.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := port.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
	if stub.closed != 1 {
		t.Errorf("Native port closed %d times, want 1", stub.closed)
	}

	if _, err := port.Write([]byte("AT")); err != ErrPortClosed {
		t.Errorf("Expected ErrPortClosed after close, got %v", err)
	}
	if _, err := port.Read(buf); err != ErrPortClosed {
		t.Errorf("Expected ErrPortClosed after close, got %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	if err != ErrNoPortSelected {
		t.Errorf("Expected ErrNoPortSelected, got %v", err)
	}
}

func TestOpenNonExistentDevice(t *testing.T) {
	_, err := Open("/dev/serialterm-nonexistent")
	if err == nil {
		t.Fatal("Expected error when opening non-existent device")
	}
	if !errors.Is(err, ErrPortOpen) {
		t.Errorf("Expected ErrPortOpen, got %v", err)
	}

	var openErr *PortOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("Expected *PortOpenError, got %T", err)
	}
	if openErr.Port != "/dev/serialterm-nonexistent" {
		t.Errorf("Unexpected port in error: %s", openErr.Port)
	}
}

func TestPortOpenErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		target error
	}{
		{"not exist", fmt.Errorf("open COM1: %w", fs.ErrNotExist), ErrDeviceNotFound},
		{"permission", fmt.Errorf("open COM1: %w", fs.ErrPermission), ErrPermissionDenied},
		{"unclassified", errors.New("i/o error"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &PortOpenError{Port: "COM1", Err: tt.cause}
			if !errors.Is(err, ErrPortOpen) {
				t.Error("PortOpenError should always match ErrPortOpen")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Expected %v to match %v", err, tt.target)
			}
		})
	}
}
