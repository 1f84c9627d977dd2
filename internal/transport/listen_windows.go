//go:build windows

package transport

import (
	"context"
	"net"
)

// listen uses the standard listener; Winsock picks the backlog.
func listen(ctx context.Context, addr *net.TCPAddr, _ int) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp4", addr.String())
}
