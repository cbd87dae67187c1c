package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Badi1298/Bankist/infra/initializer"
	"github.com/Badi1298/Bankist/pkg/config"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	ledger, err := initializer.InitializeDependencies(ctx, cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize ledger:", err)
		os.Exit(1)
	}

	r := newREPL(ledger, os.Stdin, os.Stdout)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		r.readPin = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stdout)
			return string(b), err
		}
	}
	if err := r.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
