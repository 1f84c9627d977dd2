package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"tcpsock/internal/capability"
	"tcpsock/internal/metrics"
	"tcpsock/internal/retry"
	"tcpsock/internal/session"
	"tcpsock/socket"
	"tcpsock/util"
)

// ConnectMode connects a client socket to Host:Port and runs a
// capability on the resulting connection.
type ConnectMode struct {
	Host       string // IPv4 literal
	Port       int
	Wait       time.Duration // retry a refused connect for this long
	SourcePort int           // local port to bind; 0 lets the OS pick
	Capability capability.Capability
	Logger     *util.Logger
	Metrics    *metrics.Collector

	// Stdin is forwarded to the peer when set; a nil Stdin sends
	// nothing.  Stdout defaults to os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ConnectMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run connects, creates a session, and hands it to the capability.
// The socket is disconnected when Run returns.
func (m *ConnectMode) Run(ctx context.Context) error {
	logger := m.Logger
	if logger == nil {
		logger = util.NewLogger(0)
	}

	sock := socket.New(
		socket.WithLogger(logger),
		socket.WithMetrics(m.Metrics),
		socket.WithSourcePort(m.SourcePort),
	)
	if err := m.connect(ctx, sock, logger); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connect to %s: %w", util.FormatAddr(m.Host, m.Port), err)
	}
	defer sock.Close()

	sess := session.New(sock, m.Stdin, m.stdout(), logger)
	err := m.Capability.Handle(ctx, sess)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// connect makes one attempt, or keeps retrying refused attempts with
// backoff until Wait has passed.  Wait also bounds an attempt that
// hangs.  A failed Connect leaves the socket
// unopened, so the same socket is reused.
func (m *ConnectMode) connect(ctx context.Context, sock *socket.Socket, logger *util.Logger) error {
	if m.Wait <= 0 {
		return sock.ConnectContext(ctx, m.Host, m.Port)
	}

	ctx, cancel := context.WithTimeout(ctx, m.Wait)
	defer cancel()

	b := retry.ConnectBackoff()
	b.Retryable = func(err error) bool { return socket.IsKind(err, socket.KindConnect) }
	b.OnRetry = func(attempt int, wait time.Duration, err error) {
		logger.Verbose("attempt %d failed, retrying in %s: %v", attempt, wait.Truncate(time.Millisecond), err)
	}
	return b.Do(ctx, func(int) error {
		return sock.ConnectContext(ctx, m.Host, m.Port)
	})
}
