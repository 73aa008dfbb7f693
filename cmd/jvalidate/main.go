// Command jvalidate validates JSON instance documents against a compiled
// JSON Schema Draft-07 document from the command line.
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

	os.Exit(Run(ctx, os.Args, os.Stdout, os.Stderr))
}
