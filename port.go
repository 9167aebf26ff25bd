package serial

import (
	"io"
	"sync"
	"time"

	bugst "go.bug.st/serial"
)

// Conn is the part of an open serial handle the terminal relies on
type Conn interface {
	io.ReadWriteCloser
}

// Port is an open serial port
type Port struct {
	mu     sync.Mutex
	conn   bugst.Port
	path   string
	config Config
	closed bool
}

// Ensure Port satisfies Conn at compile time
var _ Conn = (*Port)(nil)

// openNative is swapped in tests
var openNative = bugst.Open

// Open opens the serial port at path. A zero ReadTimeout makes every Read
// return immediately with whatever is available.
func Open(path string, opts ...Option) (*Port, error) {
	if path == "" {
		return nil, ErrNoPortSelected
	}

	config, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	conn, err := openNative(path, toMode(config))
	if err != nil {
		return nil, &PortOpenError{Port: path, Err: err}
	}

	if err := conn.SetReadTimeout(config.ReadTimeout); err != nil {
		conn.Close()
		return nil, &PortOpenError{Port: path, Err: err}
	}

	return &Port{
		conn:   conn,
		path:   path,
		config: config,
	}, nil
}

// Path returns the identifier the port was opened with
func (p *Port) Path() string {
	return p.path
}

// Config returns the configuration the port was opened with
func (p *Port) Config() Config {
	return p.config
}

// Read reads available bytes. It returns 0, nil when the read timeout expires.
func (p *Port) Read(buf []byte) (int, error) {
	if p.isClosed() {
		return 0, ErrPortClosed
	}
	return p.conn.Read(buf)
}

// Write writes data to the port
func (p *Port) Write(data []byte) (int, error) {
	if p.isClosed() {
		return 0, ErrPortClosed
	}
	return p.conn.Write(data)
}

// SetReadTimeout changes the read timeout of an open port
func (p *Port) SetReadTimeout(timeout time.Duration) error {
	if p.isClosed() {
		return ErrPortClosed
	}
	if err := p.conn.SetReadTimeout(timeout); err != nil {
		return err
	}
	p.mu.Lock()
	p.config.ReadTimeout = timeout
	p.mu.Unlock()
	return nil
}

// Close closes the port. Closing an already closed port is a no-op.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.conn.Close()
}

func (p *Port) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func toMode(config Config) *bugst.Mode {
	mode := &bugst.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
		StopBits: bugst.OneStopBit,
		Parity:   bugst.NoParity,
	}
	if config.StopBits == 2 {
		mode.StopBits = bugst.TwoStopBits
	}
	switch config.Parity {
	case ParityOdd:
		mode.Parity = bugst.OddParity
	case ParityEven:
		mode.Parity = bugst.EvenParity
	case ParityMark:
		mode.Parity = bugst.MarkParity
	case ParitySpace:
		mode.Parity = bugst.SpaceParity
	}
	return mode
}
