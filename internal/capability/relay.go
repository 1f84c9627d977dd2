package capability

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tcpsock/internal/session"
)

// Relay is the client side of the demo exchange: it sends Message (or
// the session's Stdin when Message is empty) and copies one Receive
// worth of reply to Stdout.
type Relay struct {
	Message string
}

// Handle sends the local payload, if any, then receives the reply.
func (r *Relay) Handle(ctx context.Context, sess *session.Session) error {
	defer disconnectOnCancel(ctx, sess)()

	var payload io.Reader
	switch {
	case r.Message != "":
		payload = strings.NewReader(r.Message)
	case sess.Stdin != nil:
		payload = sess.Stdin
	}

	if payload != nil {
		if err := sess.Sock.Send(payload); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	}

	if err := sess.Sock.Receive(sess.Stdout); err != nil {
		return fmt.Errorf("receive: %w", err)
	}
	return nil
}
