// Package main is the entry point for the proxy that bridges the game
// server's message bus and a fleet of robots (spec section 1).
//
// Architecture overview:
//
// The core orchestration engine lives under internal/: server discovery
// with liveness tracking (internal/discovery), the message-hub dispatch
// loop (internal/hub), the action/retry engine (internal/engine), the
// per-robot state machine (internal/robot), and the concurrent UDP beacon
// listener (internal/beacon). internal/program composes all of it into
// the main tick loop (spec section 4.13). Flag parsing (cmd) and this
// file are the external collaborators spec section 1 explicitly keeps out
// of that core.
//
// Configuration:
// DEBUG=true in the environment (or --verbose) enables debug logging
// throughout the proxy; see shared/config.go.
//
// Graceful shutdown:
// SIGINT/SIGTERM cancel the command's context, which unwinds the tick
// loop and its background workers; a bounded drain timeout forces exit if
// shutdown hangs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"proxyrobots/cmd"
	"proxyrobots/shared"
)

// version is set by the build in real release pipelines; left as a
// placeholder here since the original has no release tooling.
const version = "dev"

// shutdownDrain bounds how long main waits for the command to unwind
// after a termination signal before forcing exit.
const shutdownDrain = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		shared.DebugPrint("no .env file loaded: %v", err)
	}
	shared.InitConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		shared.DebugPrint("received termination signal, shutting down...")
		cancel()
	}()

	root := cmd.NewCommand(version)
	root.SetContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- root.Execute()
	}()

	select {
	case err := <-done:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case <-ctx.Done():
		select {
		case err := <-done:
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		case <-time.After(shutdownDrain):
			fmt.Fprintln(os.Stderr, "timeout waiting for shutdown, forcing exit")
			os.Exit(1)
		}
	}
}
