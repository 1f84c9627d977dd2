//go:build !windows

package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// listen builds the socket by hand so the backlog reaches listen(2);
// net.ListenConfig always passes somaxconn.  SO_REUSEADDR lets a
// restarted server rebind a port still in TIME_WAIT.
func listen(_ context.Context, addr *net.TCPAddr, backlog int) (net.Listener, error) {
	ip4 := addr.IP.To4()
	if addr.IP == nil {
		ip4 = net.IPv4zero.To4()
	}
	if ip4 == nil {
		return nil, fmt.Errorf("listen %s: not an IPv4 address", addr)
	}
	sa := &unix.SockaddrInet4{Port: addr.Port}
	copy(sa.Addr[:], ip4)

	// Hold ForkLock so the descriptor cannot leak into a child before
	// close-on-exec is set.
	syscall.ForkLock.RLock()
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err == nil {
		unix.CloseOnExec(fd)
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("setsockopt", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("bind", err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("listen", err)
	}

	// FileListener dups the descriptor; the original is closed with f.
	f := os.NewFile(uintptr(fd), "tcp4:"+addr.String())
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, err
	}
	return ln, nil
}
