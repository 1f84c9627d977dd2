// tcpsock - a small IPv4 TCP socket toolkit and its demo client/server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tcpsock/cmd"
	"tcpsock/util"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		util.NewLogger(0).Error("%v", err)
		os.Exit(1)
	}
}
