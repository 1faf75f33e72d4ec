// Command example demonstrates embedding cueboard via the SDK.
//
// Run it, open http://localhost:9090 on the director's device, and
// http://localhost:9090/view on each display. Every cue change is also
// logged through the registered callback.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stagecue/cueboard"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cb, err := cueboard.New(
		cueboard.WithPort(9090),
		cueboard.WithTitle("Rehearsal Room"),
		cueboard.WithWaitTimeout(30*time.Second),
		cueboard.WithLogger(logger),
		cueboard.WithChangeCallback(func(c cueboard.Change) {
			logger.Info("cue changed", "signal", c.Signal, "revision", c.Revision)
		}),
	)
	if err != nil {
		logger.Error("failed to create cueboard", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cb.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
