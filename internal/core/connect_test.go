package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tcpsock/internal/capability"
	"tcpsock/socket"
	"tcpsock/util"
)

// serveOnce accepts one connection on a fresh loopback listener and
// runs fn on the peer.
func serveOnce(t *testing.T, fn func(peer *socket.Socket)) int {
	t.Helper()
	srv := socket.NewServer(0, "127.0.0.1")
	if err := srv.StartListening(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(srv.StopListening)

	go func() {
		peer, err := srv.Accept()
		if err != nil {
			return
		}
		defer peer.Close()
		fn(peer)
	}()
	return srv.Port()
}

// TestConnectMode_Receive verifies end-to-end connect mode with Relay.
func TestConnectMode_Receive(t *testing.T) {
	port := serveOnce(t, func(peer *socket.Socket) {
		peer.Send(bytes.NewBufferString("hello from server\n")) //nolint:errcheck
	})

	output := &bytes.Buffer{}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	mode := &ConnectMode{
		Host:       "127.0.0.1",
		Port:       port,
		Capability: &capability.Relay{},
		Logger:     util.NewLogger(0),
		Stdout:     output,
	}

	if err := mode.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := output.String(); got != "hello from server\n" {
		t.Errorf("output = %q, want %q", got, "hello from server\n")
	}
}

// TestConnectMode_SendData verifies stdin flows from client to server.
func TestConnectMode_SendData(t *testing.T) {
	received := make(chan string, 1)
	port := serveOnce(t, func(peer *socket.Socket) {
		var buf bytes.Buffer
		peer.Receive(&buf) //nolint:errcheck
		received <- buf.String()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	mode := &ConnectMode{
		Host:       "127.0.0.1",
		Port:       port,
		Capability: &capability.Relay{},
		Logger:     util.NewLogger(0),
		Stdin:      bytes.NewBufferString("payload from client"),
		Stdout:     &bytes.Buffer{},
	}

	_ = mode.Run(ctx)

	select {
	case got := <-received:
		if got != "payload from client" {
			t.Errorf("server got %q", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for data")
	}
}

// TestConnectMode_Refused verifies a closed port is reported as a
// connect error.
func TestConnectMode_Refused(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}

	mode := &ConnectMode{
		Host:       "127.0.0.1",
		Port:       port,
		Capability: &capability.Relay{},
		Logger:     util.NewLogger(0),
	}
	err = mode.Run(context.Background())
	if !socket.IsKind(err, socket.KindConnect) {
		t.Fatalf("expected connect error, got %v", err)
	}
}

// TestListenAndConnect pairs the two modes the way the demo program
// runs them in separate processes.
func TestListenAndConnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverOut := &bytes.Buffer{}
	lm := &ListenMode{
		Host:       "127.0.0.1",
		Count:      1,
		Capability: &capability.Greet{Message: "Hello, client!"},
		Logger:     util.NewLogger(0),
		Stdout:     serverOut,
	}
	port, serverErr := startListen(t, ctx, lm)

	clientOut := &bytes.Buffer{}
	cm := &ConnectMode{
		Host:       "127.0.0.1",
		Port:       port,
		Capability: &capability.Relay{Message: "Hello, server!"},
		Logger:     util.NewLogger(0),
		Stdout:     clientOut,
	}
	if err := cm.Run(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}

	select {
	case err := <-serverErr:
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not finish")
	}

	if clientOut.String() != "Hello, client!" {
		t.Errorf("client got %q", clientOut.String())
	}
	want := "Connection accepted from 127.0.0.1\nReceived from client: Hello, server!\n"
	if serverOut.String() != want {
		t.Errorf("server output = %q, want %q", serverOut.String(), want)
	}
}

// TestConnectMode_WaitForListener verifies Wait covers a server that
// starts after the client.
func TestConnectMode_WaitForListener(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(300 * time.Millisecond)
		srv := socket.NewServer(port, "127.0.0.1")
		if err := srv.StartListening(); err != nil {
			return
		}
		defer srv.StopListening()
		peer, err := srv.Accept()
		if err != nil {
			return
		}
		defer peer.Close()
		peer.Send(bytes.NewBufferString("late hello")) //nolint:errcheck
	}()

	output := &bytes.Buffer{}
	mode := &ConnectMode{
		Host:       "127.0.0.1",
		Port:       port,
		Wait:       3 * time.Second,
		Capability: &capability.Relay{},
		Logger:     util.NewLogger(0),
		Stdout:     output,
	}
	if err := mode.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output.String() != "late hello" {
		t.Errorf("output = %q", output.String())
	}
}

// TestConnectMode_WaitGivesUp verifies the last connect error survives
// an exhausted wait.
func TestConnectMode_WaitGivesUp(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}

	mode := &ConnectMode{
		Host:       "127.0.0.1",
		Port:       port,
		Wait:       200 * time.Millisecond,
		Capability: &capability.Relay{},
		Logger:     util.NewLogger(0),
	}
	start := time.Now()
	err = mode.Run(context.Background())
	if !socket.IsKind(err, socket.KindConnect) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("gave up after %v, before the wait elapsed", elapsed)
	}
}
