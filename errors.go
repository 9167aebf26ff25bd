package serial

import (
	"errors"
	"fmt"
	"io/fs"

	bugst "go.bug.st/serial"
)

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")

	// Session errors
	ErrNoPortSelected   = errors.New("no serial port selected")
	ErrPortOpen         = errors.New("failed to open serial port")
	ErrNotConnected     = errors.New("serial port not open")
	ErrAlreadyConnected = errors.New("serial port already open")
	ErrEmptyInput       = errors.New("empty input")
	ErrDecode           = errors.New("unable to decode received data")
)

// PortOpenError is returned when the operating system refuses to open a port.
// It matches ErrPortOpen and, when the cause can be classified, one of
// ErrDeviceNotFound, ErrPermissionDenied or ErrDeviceInUse.
type PortOpenError struct {
	Port string
	Err  error
}

func (e *PortOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Port, e.Err)
}

func (e *PortOpenError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPortOpen or the classified cause.
func (e *PortOpenError) Is(target error) bool {
	if target == ErrPortOpen {
		return true
	}
	if kind := classifyOpenError(e.Err); kind != nil {
		return target == kind
	}
	return false
}

// classifyOpenError maps go.bug.st/serial error codes onto the sentinel errors
func classifyOpenError(err error) error {
	var portErr *bugst.PortError
	if !errors.As(err, &portErr) {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return ErrDeviceNotFound
		case errors.Is(err, fs.ErrPermission):
			return ErrPermissionDenied
		}
		return nil
	}
	switch portErr.Code() {
	case bugst.PortNotFound, bugst.InvalidSerialPort:
		return ErrDeviceNotFound
	case bugst.PermissionDenied:
		return ErrPermissionDenied
	case bugst.PortBusy:
		return ErrDeviceInUse
	case bugst.InvalidSpeed:
		return ErrInvalidBaudRate
	case bugst.PortClosed:
		return ErrPortClosed
	default:
		return nil
	}
}
