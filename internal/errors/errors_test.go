package errors

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"testing"
)

func TestSocketError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  SocketError
		want string
	}{
		{
			name: "with addr",
			err:  SocketError{Kind: KindConnect, Op: "connect", Addr: "127.0.0.1:80", Err: fmt.Errorf("connection refused")},
			want: "connect 127.0.0.1:80: connection refused",
		},
		{
			name: "without addr",
			err:  SocketError{Kind: KindState, Op: "accept", Err: ErrNotListening},
			want: "accept: socket is not listening",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSocketError_Unwrap(t *testing.T) {
	err := Wrap(KindTransfer, "receive", "x", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("should unwrap to io.ErrUnexpectedEOF")
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "port",
				Value:   99999,
				Message: "out of range 0-65535",
				Hint:    "use a port between 1 and 65535",
			},
			want: "config: --port=99999: out of range 0-65535\n  hint: use a port between 1 and 65535",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "host",
				Message: "required in connect mode",
			},
			want: "config: --host: required in connect mode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestState(t *testing.T) {
	err := State("connect", ErrListening)
	if err.Kind != KindState {
		t.Errorf("kind = %v, want %v", err.Kind, KindState)
	}
	if !errors.Is(err, ErrListening) {
		t.Error("should unwrap to ErrListening")
	}
}

func TestWrapOpen(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"socket syscall", os.NewSyscallError("socket", syscall.EMFILE), KindResource},
		{"bind syscall", os.NewSyscallError("bind", syscall.EADDRINUSE), KindBind},
		{"plain", fmt.Errorf("boom"), KindBind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapOpen("listen", ":80", tt.err).Kind; got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		want bool
	}{
		{"nil", nil, KindState, false},
		{"match", State("accept", ErrNotListening), KindState, true},
		{"mismatch", Wrap(KindBind, "listen", "", io.EOF), KindState, false},
		{"wrapped", fmt.Errorf("outer: %w", Wrap(KindConnect, "connect", "", io.EOF)), KindConnect, true},
		{"plain error", fmt.Errorf("boom"), KindTransfer, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKind(tt.err, tt.kind); got != tt.want {
				t.Errorf("IsKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindResolve.String(); got != "resolve" {
		t.Errorf("got %q", got)
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("got %q", got)
	}
}

func TestSentinels(t *testing.T) {
	// Verify sentinel errors are distinct.
	sentinels := []error{
		ErrListening, ErrConnected, ErrClientSocket, ErrAlreadyListening,
		ErrAlreadyConnected, ErrConnecting, ErrNotListening, ErrNotConnected,
		ErrListenerClosed, ErrInvalidAddress,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
