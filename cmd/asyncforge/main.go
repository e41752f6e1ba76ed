// Command asyncforge compiles service descriptions into AsyncAPI documents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/asyncforge/cmd/asyncforge/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, commands.NewApp(), os.Args[1:])
	stop()
	os.Exit(code)
}
