// Package transport is the OS boundary of tcpsock.  It opens IPv4
// stream sockets (listening and outbound), applies socket options, and
// tracks the process-wide socket subsystem.  Everything above this
// package works on net.Listener / net.Conn handles and never touches a
// raw descriptor.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound IPv4 stream connections.
type Dialer interface {
	// Dial blocks until the connection is established or fails.
	Dial(ctx context.Context, addr *net.TCPAddr) (net.Conn, error)
}

// Listen creates an IPv4 stream socket bound to addr and marks it
// listening with the given pending-connection queue length.  Where the
// platform cannot take an explicit backlog the OS default is used.
func Listen(ctx context.Context, addr *net.TCPAddr, backlog int) (net.Listener, error) {
	return listen(ctx, addr, backlog)
}
