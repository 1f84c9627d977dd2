package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"tcpsock/internal/capability"
	"tcpsock/internal/metrics"
	"tcpsock/internal/session"
	"tcpsock/socket"
	"tcpsock/util"
)

// ListenMode binds a server socket, accepts Count connections one
// after another and runs a capability on each.  The listener is closed
// when Run returns or ctx is cancelled.
type ListenMode struct {
	Host       string // "" binds every local IPv4 address
	Port       int    // 0 picks an ephemeral port
	Count      int
	Capability capability.Capability
	Logger     *util.Logger
	Metrics    *metrics.Collector

	// Ready, when set, is called with the bound port once the socket
	// is listening.
	Ready func(port int)

	// Stdin is handed to each session as is; Stdout defaults to
	// os.Stdout when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ListenMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run starts listening and dispatches accepted connections to the
// capability.  Cancellation is a clean shutdown and returns nil.
func (m *ListenMode) Run(ctx context.Context) error {
	srv := socket.NewServer(m.Port, m.Host,
		socket.WithLogger(m.Logger), socket.WithMetrics(m.Metrics))

	if err := srv.StartListening(); err != nil {
		return fmt.Errorf("listen on port %d: %w", m.Port, err)
	}
	defer srv.StopListening()

	// Closing the listener is what unblocks Accept.
	stop := context.AfterFunc(ctx, srv.StopListening)
	defer stop()

	if m.Ready != nil {
		m.Ready(srv.Port())
	}

	count := m.Count
	if count < 1 {
		count = 1
	}

	for served := 0; served < count; served++ {
		peer, err := srv.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		if err := m.serve(ctx, peer); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

func (m *ListenMode) serve(ctx context.Context, peer *socket.Socket) error {
	defer peer.Close()

	sess := session.New(peer, m.Stdin, m.stdout(), m.logger())
	return m.Capability.Handle(ctx, sess)
}

func (m *ListenMode) logger() *util.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return util.NewLogger(0)
}
