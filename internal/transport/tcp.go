package transport

import (
	"context"
	"net"
)

// TCPDialer establishes plain IPv4 TCP connections, optionally binding
// to a specific source port.  The zero value is ready to use and
// imposes no timeout of its own.
type TCPDialer struct {
	LocalPort int // optional source-port binding (0 = ephemeral)
}

// Dial connects to addr over tcp4.
func (d *TCPDialer) Dial(ctx context.Context, addr *net.TCPAddr) (net.Conn, error) {
	var dialer net.Dialer

	if d.LocalPort > 0 {
		dialer.LocalAddr = &net.TCPAddr{IP: net.IPv4zero, Port: d.LocalPort}
	}

	return dialer.DialContext(ctx, "tcp4", addr.String())
}
