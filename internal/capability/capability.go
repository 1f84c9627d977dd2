// Package capability defines what happens over an established
// connection.  Each Capability encapsulates a single behaviour (greet
// a client, relay a payload) and operates on a Session rather than a
// raw socket, which keeps capabilities testable and decoupled from how
// the connection was opened.
package capability

import (
	"context"

	"tcpsock/internal/session"
)

// Capability handles a single connection according to a specific
// behaviour.
type Capability interface {
	// Handle runs the capability against the given session.  It blocks
	// until the exchange is done; cancelling ctx disconnects the
	// session's socket, which aborts any blocked transfer.
	Handle(ctx context.Context, sess *session.Session) error
}

// disconnectOnCancel ties the session socket's lifetime to ctx.  The
// returned func detaches it again.
func disconnectOnCancel(ctx context.Context, sess *session.Session) func() bool {
	return context.AfterFunc(ctx, sess.Sock.Disconnect)
}
