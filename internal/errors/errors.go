// Package errors provides domain-specific error types for tcpsock.
//
// Every failure at the OS boundary is reported as a *SocketError whose
// Kind tells the caller which stage failed (state check, socket
// creation, address lookup, bind, accept, connect or transfer).  There
// is no retry classification: a failed call is final and any retry
// policy belongs to the caller.
package errors

import (
	"errors"
	"fmt"
	"os"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrListening        = errors.New("cannot connect on a listening socket")
	ErrConnected        = errors.New("cannot listen on a connected socket")
	ErrClientSocket     = errors.New("cannot listen on a client socket")
	ErrAlreadyListening = errors.New("socket is already listening")
	ErrAlreadyConnected = errors.New("socket is already connected")
	ErrConnecting       = errors.New("connect already in progress")
	ErrNotListening     = errors.New("socket is not listening")
	ErrNotConnected     = errors.New("socket is not connected")
	ErrListenerClosed   = errors.New("listening socket was closed")
	ErrInvalidAddress   = errors.New("invalid address / address not supported")
)

// ── Kinds ────────────────────────────────────────────────────────────

// Kind classifies a SocketError by the stage that failed.
type Kind int

const (
	KindState    Kind = iota + 1 // misuse of the role state machine
	KindResource                 // native socket allocation failed
	KindResolve                  // host could not be resolved or parsed
	KindBind                     // bind or listen failed
	KindAccept                   // accept failed
	KindConnect                  // connect refused, unreachable, ...
	KindTransfer                 // send or receive failed mid-stream
)

var kindNames = map[Kind]string{
	KindState:    "state",
	KindResource: "resource",
	KindResolve:  "resolve",
	KindBind:     "bind",
	KindAccept:   "accept",
	KindConnect:  "connect",
	KindTransfer: "transfer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ── Structured error types ───────────────────────────────────────────

// SocketError represents a failed socket operation.
type SocketError struct {
	Kind Kind
	Op   string // "listen", "accept", "connect", "send", "receive", ...
	Addr string // network address involved, if any
	Err  error  // underlying error
}

func (e *SocketError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *SocketError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a SocketError of the given kind.
func Wrap(kind Kind, op, addr string, err error) *SocketError {
	return &SocketError{Kind: kind, Op: op, Addr: addr, Err: err}
}

// State creates a KindState error for a state-machine violation.
func State(op string, sentinel error) *SocketError {
	return &SocketError{Kind: KindState, Op: op, Err: sentinel}
}

// WrapOpen classifies a failure from opening a listening socket: a
// failed socket(2) call is KindResource, anything else is KindBind.
func WrapOpen(op, addr string, err error) *SocketError {
	kind := KindBind
	var se *os.SyscallError
	if errors.As(err, &se) && se.Syscall == "socket" {
		kind = KindResource
	}
	return Wrap(kind, op, addr, err)
}

// ── Classification helpers ───────────────────────────────────────────

// KindOf returns the Kind of the first SocketError in err's chain, or
// 0 if there is none.
func KindOf(err error) Kind {
	var se *SocketError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
