package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"todoapp/internal/console"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := console.NewSession(os.Stdout).Run(ctx, os.Stdin); err != nil {
		log.Fatalf("read input: %v", err)
	}
}
