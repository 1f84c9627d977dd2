package capability

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"tcpsock/internal/session"
)

// Greet is the server side of the demo exchange: it sends a fixed
// greeting, then prints whatever the client sends back.
type Greet struct {
	Message string
}

// Handle sends the greeting and reports the client's reply on the
// session's Stdout.
func (g *Greet) Handle(ctx context.Context, sess *session.Session) error {
	defer disconnectOnCancel(ctx, sess)()

	fmt.Fprintf(sess.Stdout, "Connection accepted from %s\n", sess.Sock.Address())

	if err := sess.Sock.Send(strings.NewReader(g.Message)); err != nil {
		return fmt.Errorf("send greeting: %w", err)
	}
	sess.Logger.Verbose("sent %d-byte greeting to %s", len(g.Message), sess.Sock.Address())

	var reply bytes.Buffer
	if err := sess.Sock.Receive(&reply); err != nil {
		return fmt.Errorf("receive reply: %w", err)
	}
	fmt.Fprintf(sess.Stdout, "Received from client: %s\n", reply.String())
	return nil
}
