package socket

import (
	"context"
	"fmt"
	"net"

	ncerr "tcpsock/internal/errors"
	"tcpsock/util"
)

// Connect is ConnectContext with a background context.
func (s *Socket) Connect(host string, port int) error {
	return s.ConnectContext(context.Background(), host, port)
}

// ConnectContext opens a connection to host:port, where host must be
// an IPv4 dotted-decimal literal.  A malformed host is reported as
// KindResolve before any handle is created; a refused or unreachable
// peer, or a dial cut short by ctx, Disconnect or Close, is
// KindConnect.  Once connected the socket can no longer listen.
//
// The dial runs without the instance lock, so other methods stay
// responsive while it is pending.
func (s *Socket) ConnectContext(ctx context.Context, host string, port int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	target, err := s.beginConnect(host, port, cancel)
	if err != nil {
		return err
	}

	s.logger.Verbose("connecting to %s", target)
	conn, err := s.dialer.Dial(ctx, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelDial = nil

	if err == nil && ctx.Err() != nil {
		// Disconnect or Close ran as the dial completed.
		_ = conn.Close()
		err = ctx.Err()
	}
	if err != nil {
		s.subsys.Release()
		return s.fail(ncerr.Wrap(ncerr.KindConnect, "connect", target.String(), err))
	}

	s.conn = conn
	s.role = RoleClient
	s.server = false
	s.host = host
	s.port = port
	s.addr = target.IP.String()
	s.metrics.ConnectionOpened()
	s.logger.Verbose("connected to %s", conn.RemoteAddr())
	return nil
}

// beginConnect validates the state and target under the lock, takes a
// subsystem reference and marks the socket as dialing.
func (s *Socket) beginConnect(host string, port int, cancel context.CancelFunc) (*net.TCPAddr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.role == RoleListening:
		return nil, s.fail(ncerr.State("connect", ncerr.ErrListening))
	case s.role.connected():
		return nil, s.fail(ncerr.State("connect", ncerr.ErrAlreadyConnected))
	case s.cancelDial != nil:
		return nil, s.fail(ncerr.State("connect", ncerr.ErrConnecting))
	}

	ip, err := util.ParseIPv4(host)
	if err != nil {
		return nil, s.fail(ncerr.Wrap(ncerr.KindResolve, "connect", host,
			fmt.Errorf("%w: %v", ncerr.ErrInvalidAddress, err)))
	}
	if port < 0 || port > 65535 {
		return nil, s.fail(ncerr.Wrap(ncerr.KindResolve, "connect", host,
			fmt.Errorf("%w: port %d out of range", ncerr.ErrInvalidAddress, port)))
	}
	target := &net.TCPAddr{IP: ip, Port: port}

	if err := s.subsys.Acquire(); err != nil {
		return nil, s.fail(ncerr.Wrap(ncerr.KindResource, "connect", target.String(), err))
	}
	s.cancelDial = cancel
	return target, nil
}

// Disconnect closes the connection of a client or accepted socket and
// returns it to the unopened role.  A pending Connect is aborted
// instead.  It is a no-op otherwise, so calling it twice is safe.
func (s *Socket) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.role.connected() {
		if s.cancelDial != nil {
			s.cancelDial()
		}
		return
	}

	_ = s.conn.Close()
	s.conn = nil
	s.role = RoleUnopened
	s.subsys.Release()
	s.metrics.ConnectionClosed()
	s.logger.Info("disconnected from remote socket %s", s.addr)
}
