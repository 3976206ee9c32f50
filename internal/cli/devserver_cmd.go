// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// devserver_cmd.go - Run the development server.
//
// Command: devserver [--addr HOST:PORT]
// Aliases: serve
//
// The server keeps accounts, conversations and analyses in memory; they
// are lost when it stops. Ctrl+C shuts it down gracefully.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/server"
)

// shutdownTimeout bounds the graceful shutdown.
const shutdownTimeout = 10 * time.Second

// HandleDevServer handles the "devserver" command.
func HandleDevServer(args Args) error {
	// The server logs to stderr so requests are visible.
	level := "info"
	if args.Verbose {
		level = "debug"
	}
	if err := logging.Init(level, "text", ""); err != nil {
		return &ConfigError{Err: err}
	}
	defer logging.Close()

	addr := args.Parser().FlagOrDefault("addr", server.DefaultAddr)
	srv := server.NewServer(server.Options{Addr: addr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if !args.Quiet {
		fmt.Fprintf(os.Stderr, "Development server listening on http://%s (Ctrl+C to stop)\n", addr)
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("development server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
