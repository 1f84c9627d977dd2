package util

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ParseIPv4 parses a dotted-decimal IPv4 literal.  Hostnames, IPv6 and
// IPv4-mapped IPv6 notation are rejected.
func ParseIPv4(host string) (net.IP, error) {
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil || strings.Contains(host, ":") {
		return nil, fmt.Errorf("%q is not an IPv4 address", host)
	}
	return ip.To4(), nil
}

// ResolveIPv4 resolves host to an IPv4 TCP address.  An empty host
// yields the wildcard address 0.0.0.0.
func ResolveIPv4(host string, port int) (*net.TCPAddr, error) {
	if host == "" {
		return &net.TCPAddr{IP: net.IPv4zero, Port: port}, nil
	}
	addr, err := net.ResolveTCPAddr("tcp4", FormatAddr(host, port))
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", host, err)
	}
	return addr, nil
}

// IPv4String renders the IPv4 part of addr in dotted-decimal form, or
// "" if addr is not an IPv4 TCP address.
func IPv4String(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || tcp.IP.To4() == nil {
		return ""
	}
	return tcp.IP.To4().String()
}

// FormatAddr returns "host:port".
func FormatAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// FindFreePort returns an available TCP port on 127.0.0.1.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
