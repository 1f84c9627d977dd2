package socket

import (
	"errors"
	"io"
	"net"

	ncerr "tcpsock/internal/errors"
	"tcpsock/util"
)

// Send copies r to the connection in ChunkSize pieces until r is
// exhausted.  The first failed write aborts the call; bytes already
// written stay written.  An empty r is a successful no-op.
func (s *Socket) Send(r io.Reader) error {
	conn, err := s.openConn("send")
	if err != nil {
		return err
	}
	peer := conn.RemoteAddr().String()

	buf := util.GetChunk()
	defer util.PutChunk(buf)

	for {
		n, rerr := io.ReadFull(r, *buf)
		if n > 0 {
			if _, werr := conn.Write((*buf)[:n]); werr != nil {
				return s.fail(ncerr.Wrap(ncerr.KindTransfer, "send", peer, werr))
			}
			s.metrics.BytesSent(int64(n))
			s.logger.Debug("sent %d bytes to %s", n, peer)
		}

		switch {
		case rerr == nil:
		case errors.Is(rerr, io.EOF), errors.Is(rerr, io.ErrUnexpectedEOF):
			return nil
		default:
			return s.fail(ncerr.Wrap(ncerr.KindTransfer, "read source", "", rerr))
		}
	}
}

// Receive copies data from the connection to w in ChunkSize pieces.
// It returns when the peer closes its write side, or as soon as a
// read comes back shorter than ChunkSize: a short read is taken to
// mean no more data is pending right now, even though more may arrive
// later.  Callers that need the whole stream should have the peer
// disconnect after sending.
func (s *Socket) Receive(w io.Writer) error {
	conn, err := s.openConn("receive")
	if err != nil {
		return err
	}
	peer := conn.RemoteAddr().String()

	buf := util.GetChunk()
	defer util.PutChunk(buf)

	for {
		n, rerr := conn.Read(*buf)
		if n > 0 {
			if _, werr := w.Write((*buf)[:n]); werr != nil {
				return s.fail(ncerr.Wrap(ncerr.KindTransfer, "write sink", "", werr))
			}
			s.metrics.BytesReceived(int64(n))
			s.logger.Debug("received %d bytes from %s", n, peer)
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return s.fail(ncerr.Wrap(ncerr.KindTransfer, "receive", peer, rerr))
		}
		if n < len(*buf) {
			return nil
		}
	}
}

// openConn returns the connection handle, or a state error when the
// socket is not connected.
func (s *Socket) openConn(op string) (net.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.role.connected() {
		return nil, s.fail(ncerr.State(op, ncerr.ErrNotConnected))
	}
	return s.conn, nil
}
