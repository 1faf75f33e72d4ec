package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stagecue/cueboard"
	"github.com/stagecue/cueboard/config"
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the cueboard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cue broadcaster",
	Long: `Start the cueboard server.

The server will:
  - Load configuration from the specified YAML file (defaults apply
    without one)
  - Serve the controller page at / and the viewer at /view
  - Push cue changes to connected viewers

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  cueboard serve
  cueboard serve -c config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := config.Default()
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Info("config loaded", "file", configFile)
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"wait_timeout", cfg.WaitTimeout.Duration().String(),
	)

	opts := []cueboard.Option{
		cueboard.WithPort(cfg.Port),
		cueboard.WithWaitTimeout(cfg.WaitTimeout.Duration()),
		cueboard.WithLogger(logger),
	}
	if cfg.Title != "" {
		opts = append(opts, cueboard.WithTitle(cfg.Title))
	}

	cb, err := cueboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create cueboard: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- cb.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(cfg.ShutdownTimeout.Duration()):
			logger.Warn("shutdown timed out",
				"timeout", cfg.ShutdownTimeout.Duration().String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
