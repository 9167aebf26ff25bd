// Package session owns the serial connection: the connect/disconnect lifecycle,
// the per-connection read loop and the sender. Received lines reach the UI as
// Events on a bounded channel; the reader never touches UI state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/pkg/logging"
)

const readChunk = 4096

// State is the connection state of a Session.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// OpenFunc opens a port at the given baud rate and read timeout.
type OpenFunc func(port string, baud int, readTimeout time.Duration) (serial.Conn, error)

// OpenSerial opens a real serial port.
func OpenSerial(port string, baud int, readTimeout time.Duration) (serial.Conn, error) {
	return serial.Open(port,
		serial.WithBaudRate(baud),
		serial.WithReadTimeout(readTimeout),
	)
}

// Options configure a Session. Zero values select the defaults.
type Options struct {
	Open        OpenFunc
	ReadTimeout time.Duration
	// FlushAfter is how long a partial line may sit without new bytes before
	// it is emitted as-is
	FlushAfter  time.Duration
	LineEnding  LineEnding
	Codec       *Codec
	EventBuffer int
}

const (
	DefaultReadTimeout = 100 * time.Millisecond
	DefaultEventBuffer = 256
)

// Stats are the counters of the current (or last) connection.
type Stats struct {
	Port          string
	BaudRate      int
	ConnectedAt   time.Time
	BytesSent     uint64
	BytesReceived uint64
}

type connection struct {
	port   string
	baud   int
	conn   serial.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// Session manages at most one open connection.
type Session struct {
	opts   Options
	events chan Event

	mu    sync.Mutex
	conn  *connection
	stats Stats
}

// New returns a disconnected session.
func New(opts Options) *Session {
	if opts.Open == nil {
		opts.Open = OpenSerial
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.FlushAfter <= 0 {
		opts.FlushAfter = opts.ReadTimeout
	}
	if opts.LineEnding == "" {
		opts.LineEnding = LineEndingNone
	}
	if opts.Codec == nil {
		opts.Codec = &Codec{name: "utf-8"}
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	return &Session{
		opts:   opts,
		events: make(chan Event, opts.EventBuffer),
	}
}

// Events returns the channel the read loops deliver to. It is never closed.
func (s *Session) Events() <-chan Event {
	return s.events
}

// State reports whether a connection is open.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return Connected
	}
	return Disconnected
}

// CanSend reports whether Send may write, i.e. a connection is open.
func (s *Session) CanSend() bool {
	return s.State() == Connected
}

// Stats returns a snapshot of the connection counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Connect opens port at the baud rate given as text and starts its read loop.
func (s *Session) Connect(port, baudText string) error {
	baud, err := serial.ParseBaudRate(baudText)
	if err != nil {
		return err
	}
	if port == "" {
		return serial.ErrNoPortSelected
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("%w: %s", serial.ErrAlreadyConnected, s.conn.port)
	}

	conn, err := s.opts.Open(port, baud, s.opts.ReadTimeout)
	if err != nil {
		var openErr *serial.PortOpenError
		if !errors.As(err, &openErr) {
			err = &serial.PortOpenError{Port: port, Err: err}
		}
		logging.Error("session", err, "failed to open %s", port)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &connection{
		port:   port,
		baud:   baud,
		conn:   conn,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.conn = c
	s.stats = Stats{Port: port, BaudRate: baud, ConnectedAt: time.Now()}

	go s.readLoop(ctx, c)

	logging.Info("session", "connected to %s at %d baud", port, baud)
	return nil
}

// Disconnect closes the open connection and waits for its read loop to exit.
// It is a no-op when nothing is connected.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	c := s.conn
	s.conn = nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	c.cancel()
	err := c.conn.Close()
	<-c.done

	if err != nil && !errors.Is(err, serial.ErrPortClosed) {
		logging.Error("session", err, "failed to close %s", c.port)
		return fmt.Errorf("close %s: %w", c.port, err)
	}
	logging.Info("session", "disconnected from %s", c.port)
	return nil
}

// Toggle disconnects when connected and connects otherwise. It reports the
// state after the call.
func (s *Session) Toggle(port, baudText string) (State, error) {
	if s.State() == Connected {
		err := s.Disconnect()
		return s.State(), err
	}
	err := s.Connect(port, baudText)
	return s.State(), err
}

// Send writes text, trimmed of surrounding whitespace, followed by the
// configured line ending. It returns the log line for the sent text.
func (s *Session) Send(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", serial.ErrEmptyInput
	}

	payload, err := s.opts.Codec.Encode(text)
	if err != nil {
		return "", err
	}
	payload = append(payload, s.opts.LineEnding.Bytes()...)

	s.mu.Lock()
	c := s.conn
	s.mu.Unlock()
	if c == nil {
		return "", serial.ErrNotConnected
	}

	n, err := c.conn.Write(payload)
	s.countSent(c, n)
	if err != nil {
		logging.Error("session", err, "write to %s failed", c.port)
		return "", fmt.Errorf("write %s: %w", c.port, err)
	}

	logging.Debug("session", "sent %d bytes to %s", n, c.port)
	return "Sent: " + text, nil
}

// Close disconnects. The session may be reused afterwards.
func (s *Session) Close() error {
	return s.Disconnect()
}

func (s *Session) readLoop(ctx context.Context, c *connection) {
	defer close(c.done)

	var lines lineBuffer
	buf := make([]byte, readChunk)
	lastData := time.Now()

	for {
		if ctx.Err() != nil {
			return
		}

		n, err := c.conn.Read(buf)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logging.Error("session", err, "read from %s failed", c.port)
			s.detach(c)
			s.emit(ctx, Event{Kind: EventReadError, Port: c.port, Err: err})
			c.cancel()
			if err := c.conn.Close(); err != nil && !errors.Is(err, serial.ErrPortClosed) {
				logging.Warn("session", "closing %s after read failure: %v", c.port, err)
			}
			return
		}

		if n > 0 {
			s.countReceived(c, n)
			lastData = time.Now()
			for _, line := range lines.feed(buf[:n]) {
				if !s.emitLine(ctx, c, line) {
					return
				}
			}
			continue
		}

		if lines.buffered() > 0 && time.Since(lastData) >= s.opts.FlushAfter {
			if tail := lines.flush(); tail != nil && !s.emitLine(ctx, c, tail) {
				return
			}
			if lines.holding() {
				// give the rest of the rune another flush interval
				lastData = time.Now()
			}
		}
	}
}

func (s *Session) emitLine(ctx context.Context, c *connection, line []byte) bool {
	text, err := s.opts.Codec.Decode(line)
	if err != nil {
		logging.Warn("session", "undecodable data from %s: %q", c.port, line)
		return s.emit(ctx, Event{Kind: EventDecodeError, Port: c.port, Err: err})
	}
	return s.emit(ctx, Event{Kind: EventReceived, Port: c.port, Text: text})
}

// emit blocks while the queue is full but gives up once ctx is cancelled.
func (s *Session) emit(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// detach forgets c after a read failure so the UI can reconnect.
func (s *Session) detach(c *connection) {
	s.mu.Lock()
	if s.conn == c {
		s.conn = nil
	}
	s.mu.Unlock()
}

func (s *Session) countSent(c *connection, n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	if s.stats.Port == c.port {
		s.stats.BytesSent += uint64(n)
	}
	s.mu.Unlock()
}

func (s *Session) countReceived(c *connection, n int) {
	s.mu.Lock()
	if s.stats.Port == c.port {
		s.stats.BytesReceived += uint64(n)
	}
	s.mu.Unlock()
}
