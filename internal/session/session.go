// Package session represents a single connection lifecycle, binding an
// open socket with local I/O endpoints and a logger.
//
// A capability doesn't need to know whether it's reading from
// os.Stdin or a test buffer; it just uses the session's Stdin/Stdout.
package session

import (
	"io"

	"tcpsock/socket"
	"tcpsock/util"
)

// Session encapsulates the runtime context for a single connection.
// Stdin may be nil when there is no local input to forward.
type Session struct {
	Sock   *socket.Socket
	Stdin  io.Reader
	Stdout io.Writer
	Logger *util.Logger
}

// New creates a Session bound to the given socket and I/O pair.
func New(sock *socket.Socket, stdin io.Reader, stdout io.Writer, logger *util.Logger) *Session {
	return &Session{
		Sock:   sock,
		Stdin:  stdin,
		Stdout: stdout,
		Logger: logger,
	}
}
