package socket

import (
	"context"
	"errors"
	"fmt"
	"net"

	ncerr "tcpsock/internal/errors"
	"tcpsock/internal/transport"
	"tcpsock/util"
)

// StartListening binds the server socket to its host and port and
// starts accepting connections into the OS queue.  On failure the
// socket stays unopened and no handle is left behind.
func (s *Socket) StartListening() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.role.connected():
		return s.fail(ncerr.State("listen", ncerr.ErrConnected))
	case !s.server:
		return s.fail(ncerr.State("listen", ncerr.ErrClientSocket))
	case s.role == RoleListening:
		return s.fail(ncerr.State("listen", ncerr.ErrAlreadyListening))
	case s.cancelDial != nil:
		return s.fail(ncerr.State("listen", ncerr.ErrConnecting))
	}

	if s.port < 0 || s.port > 65535 {
		return s.fail(ncerr.Wrap(ncerr.KindResolve, "listen", s.host,
			fmt.Errorf("%w: port %d out of range", ncerr.ErrInvalidAddress, s.port)))
	}
	addr, err := util.ResolveIPv4(s.host, s.port)
	if err != nil {
		return s.fail(ncerr.Wrap(ncerr.KindResolve, "listen", s.host, err))
	}

	if err := s.subsys.Acquire(); err != nil {
		return s.fail(ncerr.Wrap(ncerr.KindResource, "listen", addr.String(), err))
	}

	ln, err := transport.Listen(context.Background(), addr, Backlog)
	if err != nil {
		s.subsys.Release()
		return s.fail(ncerr.WrapOpen("listen", addr.String(), err))
	}

	s.listener = ln
	s.role = RoleListening
	s.addr = util.IPv4String(ln.Addr())
	if bound, ok := ln.Addr().(*net.TCPAddr); ok {
		s.port = bound.Port
	}
	s.metrics.ListenerOpened()

	if s.host == "" {
		s.logger.Info("listening on port %d", s.port)
	} else {
		s.logger.Info("listening on port %d on host %s", s.port, s.host)
	}
	return nil
}

// Accept blocks until a peer connects and returns a new Socket that
// owns the accepted connection.  The listening socket is unaffected
// and can keep accepting.
//
// Closing the listener from another goroutine (StopListening or Close)
// unblocks a pending Accept with an error wrapping ErrListenerClosed.
func (s *Socket) Accept() (*Socket, error) {
	s.mu.Lock()
	if s.role != RoleListening {
		s.mu.Unlock()
		return nil, s.fail(ncerr.State("accept", ncerr.ErrNotListening))
	}
	ln := s.listener
	s.mu.Unlock()

	conn, err := ln.Accept()
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, s.fail(ncerr.State("accept", ncerr.ErrListenerClosed))
		}
		return nil, s.fail(ncerr.Wrap(ncerr.KindAccept, "accept", ln.Addr().String(), err))
	}

	if err := s.subsys.Acquire(); err != nil {
		conn.Close()
		return nil, s.fail(ncerr.Wrap(ncerr.KindResource, "accept", conn.RemoteAddr().String(), err))
	}

	peer := newPeer(conn, s)
	s.metrics.ConnectionAccepted()
	s.metrics.ConnectionOpened()
	s.logger.Verbose("connection accepted from %s", conn.RemoteAddr())
	return peer, nil
}

// StopListening closes the listening handle and returns the socket to
// the unopened role.  It is a no-op when the socket is not listening.
func (s *Socket) StopListening() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.role != RoleListening {
		return
	}

	_ = s.listener.Close()
	s.listener = nil
	s.role = RoleUnopened
	s.subsys.Release()
	s.metrics.ListenerClosed()
	s.logger.Info("stopped listening on port %d", s.port)
}
