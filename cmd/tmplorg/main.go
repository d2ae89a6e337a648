// Package main is the entry point for the tmplorg CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thoreinstein/tmplorg/cmd/tmplorg/commands"
	"github.com/thoreinstein/tmplorg/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	err := commands.Execute(ctx)
	if err == nil {
		return errors.ExitSuccess
	}

	exitErr := errors.Classify(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if exitErr.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
	}
	return exitErr.Code
}
