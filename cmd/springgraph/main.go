// Command springgraph lays out and renders directed graphs with a spring
// (force-directed) model.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		bad.Fprintf(os.Stderr, "springgraph: %v\n", err)
		stop()
		os.Exit(1)
	}
}
