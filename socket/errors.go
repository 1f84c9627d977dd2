package socket

import ncerr "tcpsock/internal/errors"

// Error is the concrete type of every failure returned by a Socket.
type Error = ncerr.SocketError

// Kind classifies an Error by the stage that failed.
type Kind = ncerr.Kind

const (
	KindState    = ncerr.KindState
	KindResource = ncerr.KindResource
	KindResolve  = ncerr.KindResolve
	KindBind     = ncerr.KindBind
	KindAccept   = ncerr.KindAccept
	KindConnect  = ncerr.KindConnect
	KindTransfer = ncerr.KindTransfer
)

// State-machine sentinels, matched with errors.Is.
var (
	ErrListening        = ncerr.ErrListening
	ErrConnected        = ncerr.ErrConnected
	ErrClientSocket     = ncerr.ErrClientSocket
	ErrAlreadyListening = ncerr.ErrAlreadyListening
	ErrAlreadyConnected = ncerr.ErrAlreadyConnected
	ErrConnecting       = ncerr.ErrConnecting
	ErrNotListening     = ncerr.ErrNotListening
	ErrNotConnected     = ncerr.ErrNotConnected
	ErrListenerClosed   = ncerr.ErrListenerClosed
	ErrInvalidAddress   = ncerr.ErrInvalidAddress
)

// IsKind reports whether err is a socket Error of the given kind.
func IsKind(err error, kind Kind) bool { return ncerr.IsKind(err, kind) }
