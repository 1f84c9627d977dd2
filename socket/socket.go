// Package socket implements a blocking IPv4 TCP socket that can act as
// a listening server, an accepted peer connection, or an outbound
// client connection.
//
// A Socket owns exactly one OS handle at a time and moves between
// roles through explicit calls:
//
//	unopened ──StartListening──▶ listening ──StopListening──▶ unopened
//	unopened ──Connect────────▶ client    ──Disconnect─────▶ unopened
//	(Accept on a listening socket returns a new Socket in the accepted role)
//
// Every call blocks until it completes or fails.  Failures are returned
// as *Error values whose Kind names the failing stage; nothing is
// retried.
package socket

import (
	"context"
	"net"
	"runtime"
	"sync"

	"tcpsock/internal/metrics"
	"tcpsock/internal/transport"
	"tcpsock/util"
)

const (
	// ChunkSize is the number of bytes moved per read or write call.
	ChunkSize = util.ChunkSize

	// Backlog is the pending-connection queue length passed to
	// listen(2).  Windows listeners use the Winsock default.
	Backlog = 3
)

// Role is the operating mode of a Socket.
type Role int

const (
	RoleUnopened Role = iota
	RoleListening
	RoleAccepted
	RoleClient
)

func (r Role) String() string {
	switch r {
	case RoleListening:
		return "listening"
	case RoleAccepted:
		return "accepted"
	case RoleClient:
		return "client"
	default:
		return "unopened"
	}
}

func (r Role) connected() bool { return r == RoleAccepted || r == RoleClient }

// Socket is a single TCP endpoint.  Methods are safe to call from
// different goroutines (closing from one goroutine unblocks Connect,
// Accept, Send or Receive in another), but concurrent Send or Receive
// calls on one Socket interleave unpredictably.
type Socket struct {
	mu sync.Mutex

	port   int
	host   string
	server bool
	role   Role
	addr   string // dotted-decimal peer or bound address

	// At most one of listener/conn is non-nil, matching role.
	listener net.Listener
	conn     net.Conn

	// cancelDial is set while a Connect is dialing; the role stays
	// unopened until the dial commits.
	cancelDial context.CancelFunc

	logger  *util.Logger
	metrics *metrics.Collector
	dialer  transport.Dialer
	subsys  *transport.Subsystem
}

// Option configures a Socket at construction.
type Option func(*Socket)

// WithLogger routes lifecycle and traffic messages to l.
func WithLogger(l *util.Logger) Option {
	return func(s *Socket) { s.logger = l }
}

// WithMetrics records connection, byte and error counts in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Socket) { s.metrics = c }
}

// WithSourcePort binds outbound connections to the given local port.
// 0 leaves the choice to the OS.
func WithSourcePort(port int) Option {
	return func(s *Socket) { s.dialer = &transport.TCPDialer{LocalPort: port} }
}

func withSubsystem(sub *transport.Subsystem) Option {
	return func(s *Socket) { s.subsys = sub }
}

// New returns an unopened Socket that can only be used as a client.
func New(opts ...Option) *Socket {
	return newSocket(0, "", false, opts)
}

// NewServer returns an unopened Socket that will listen on host:port
// once StartListening is called.  An empty host binds every local
// IPv4 address; port 0 picks an ephemeral port.
func NewServer(port int, host string, opts ...Option) *Socket {
	return newSocket(port, host, true, opts)
}

func newSocket(port int, host string, server bool, opts []Option) *Socket {
	s := &Socket{port: port, host: host, server: server}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = util.NewLogger(0)
	}
	if s.dialer == nil {
		s.dialer = &transport.TCPDialer{}
	}
	if s.subsys == nil {
		s.subsys = transport.Platform
	}
	runtime.SetFinalizer(s, (*Socket).finalize)
	return s
}

// newPeer wraps a freshly accepted connection.  The caller has already
// taken a subsystem reference for it.
func newPeer(conn net.Conn, parent *Socket) *Socket {
	s := &Socket{
		role:    RoleAccepted,
		addr:    util.IPv4String(conn.RemoteAddr()),
		conn:    conn,
		logger:  parent.logger,
		metrics: parent.metrics,
		dialer:  parent.dialer,
		subsys:  parent.subsys,
	}
	runtime.SetFinalizer(s, (*Socket).finalize)
	return s
}

// Role returns the current role.
func (s *Socket) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// IsListening reports whether the socket is in the listening role.
func (s *Socket) IsListening() bool { return s.Role() == RoleListening }

// IsConnected reports whether the socket holds an open connection,
// either as a client or as an accepted peer.
func (s *Socket) IsConnected() bool { return s.Role().connected() }

// Port returns the target port.  After StartListening it is the port
// actually bound, so a requested port 0 reads back as the ephemeral
// port chosen by the OS.  Accepted peers report 0.
func (s *Socket) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// Host returns the bind host or the remote host last connected to.
func (s *Socket) Host() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host
}

// Address returns the recorded IPv4 address in dotted-decimal form:
// the peer for accepted and client sockets, the bound address for a
// listening socket.  It is empty until a listen, accept or connect has
// populated it and keeps its last value after the socket is closed.
func (s *Socket) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Close releases whatever handle the socket holds.  It never fails;
// the error return only satisfies io.Closer.
func (s *Socket) Close() error {
	s.StopListening()
	s.Disconnect()
	return nil
}

func (s *Socket) finalize() { _ = s.Close() }

// fail records err in the metrics collector and returns it.
func (s *Socket) fail(err error) error {
	s.metrics.RecordError(err.Error())
	return err
}
