package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/erraggy/oasrebase/cmd/oasrebase/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
