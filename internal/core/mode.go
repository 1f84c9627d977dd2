// Package core is the orchestration layer.  It composes sockets and
// capabilities into complete operational modes and provides a builder
// that selects the right mode from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  socket  →  capability  →  session  →  core  →  cmd (CLI)
//
// The builder in this package is the single dispatch point between the
// CLI and the socket package.
package core

import "context"

// Mode represents a complete operational mode of tcpsock (listen or
// connect).  Each mode owns its full lifecycle from socket creation
// to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
