package connection

import (
	"context"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/avcontrol/lyngdorf/internal/logging"
	"github.com/avcontrol/lyngdorf/internal/protocol"
)

// State describes the lifecycle of the link.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Closing
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Dialer abstracts net.Dialer so tests can inject a pipe.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Handlers receive decoded traffic and link events. All callbacks run on the
// reader goroutine; they must not call back into the Manager's Disconnect.
type Handlers struct {
	// OnFrame is called for every decoded frame.
	OnFrame func(protocol.Frame)

	// OnDecodeError is called for every line that failed to decode.
	OnDecodeError func(error)

	// OnConnectionLost is called exactly once when the link drops without
	// Disconnect being asked for. The Manager is Disconnected by then.
	OnConnectionLost func(err error)
}

// Manager owns the TCP connection to one device.
//
// It is safe for concurrent use. Frames arrive on a dedicated reader
// goroutine; Send may be called from any goroutine.
type Manager struct {
	mu sync.Mutex

	addr     string
	dialer   Dialer
	handlers Handlers

	state      State
	conn       net.Conn
	readerDone chan struct{}

	log *zap.Logger
}

// New creates a Manager for the given "host:port" address. A nil dialer
// means a plain net.Dialer; a nil logger means the process-wide logger.
func New(addr string, dialer Dialer, log *zap.Logger, handlers Handlers) *Manager {
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	if log == nil {
		log = logging.GetLogger()
	}
	return &Manager{
		addr:     addr,
		dialer:   dialer,
		handlers: handlers,
		log:      log.Named("connection"),
	}
}

// Addr returns the address the Manager dials.
func (m *Manager) Addr() string {
	return m.addr
}

// State returns the current link state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect dials the device and starts the reader goroutine. It returns
// ErrAlreadyConnected if a link is live or being established. If Disconnect
// is called while the dial is in flight, the dialed socket is closed and
// Connect returns ErrNotConnected.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.state != Disconnected {
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.state = Connecting
	m.mu.Unlock()

	conn, err := m.dialer.DialContext(ctx, "tcp", m.addr)

	m.mu.Lock()
	if m.state != Connecting {
		// Disconnect won the race.
		m.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return ErrNotConnected
	}
	if err != nil {
		m.state = Disconnected
		m.mu.Unlock()
		m.log.Warn("dial failed", zap.String("addr", m.addr), zap.Error(err))
		return err
	}

	m.conn = conn
	m.state = Connected
	m.readerDone = make(chan struct{})
	go m.readLoop(conn, m.readerDone)
	m.mu.Unlock()

	logging.LogConnection(m.addr, "connected")
	return nil
}

// Send writes an encoded frame to the device. It returns ErrNotConnected
// unless the link is live.
func (m *Manager) Send(data []byte) error {
	m.mu.Lock()
	if m.state != Connected {
		m.mu.Unlock()
		return ErrNotConnected
	}
	conn := m.conn
	m.mu.Unlock()

	logging.LogWire("sent", data)
	if _, err := conn.Write(data); err != nil {
		return err
	}
	return nil
}

// Disconnect closes the link and waits for the reader goroutine to exit.
// It is a no-op on an already disconnected Manager. OnConnectionLost is not
// called for a deliberate disconnect.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	switch m.state {
	case Disconnected:
		m.mu.Unlock()
		return
	case Connecting:
		// No socket yet; flip the state so the in-flight Connect bails.
		m.state = Disconnected
		m.mu.Unlock()
		return
	}

	m.state = Closing
	conn := m.conn
	done := m.readerDone
	m.mu.Unlock()

	// Closing the socket unblocks the pending Read.
	conn.Close()
	if done != nil {
		<-done
	}

	m.mu.Lock()
	m.conn = nil
	m.readerDone = nil
	m.state = Disconnected
	m.mu.Unlock()

	logging.LogConnection(m.addr, "disconnected")
}

// readLoop reads the socket until it fails, decoding frames as they arrive.
func (m *Manager) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	var dec protocol.Decoder
	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			logging.LogWire("received", buf[:n])
			frames, errs := dec.Feed(buf[:n])
			for _, decErr := range errs {
				m.log.Warn("undecodable line", zap.Error(decErr))
				if m.handlers.OnDecodeError != nil {
					m.handlers.OnDecodeError(decErr)
				}
			}
			for _, f := range frames {
				if m.handlers.OnFrame != nil {
					m.handlers.OnFrame(f)
				}
			}
		}
		if err != nil {
			m.handleReadError(err)
			return
		}
	}
}

// handleReadError distinguishes a deliberate close from a lost link.
func (m *Manager) handleReadError(err error) {
	m.mu.Lock()
	if m.state == Closing {
		// Disconnect is waiting on readerDone.
		m.mu.Unlock()
		return
	}

	m.state = Disconnected
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.readerDone = nil
	m.mu.Unlock()

	m.log.Warn("connection lost", zap.String("addr", m.addr), zap.Error(err))
	if m.handlers.OnConnectionLost != nil {
		m.handlers.OnConnectionLost(err)
	}
}
