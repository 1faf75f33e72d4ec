package cueboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stagecue/cueboard/internal/server"
	"github.com/stagecue/cueboard/internal/store"
	"github.com/stagecue/cueboard/web"
)

const (
	defaultPort        = 8080
	defaultWaitTimeout = 25 * time.Second
)

// Cueboard is the main orchestrator for the signal store and the HTTP
// server.
//
// Cueboard holds the current cue in memory, exposes the control surface for
// mutating it, and fans every change out to connected viewers. It is
// created using [New] with functional options and started with
// [Cueboard.Start].
//
// The typical lifecycle is:
//
//	cb, err := cueboard.New(cueboard.WithPort(8080))
//	if err != nil {
//	    slog.Error("failed to create cueboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	cb.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// trigger graceful shutdown. State is memory-only and resets on restart.
type Cueboard struct {
	title           string
	port            int
	waitTimeout     time.Duration
	logger          *slog.Logger
	changeCallbacks []func(Change)
}

// New creates a new [Cueboard] instance with the given options.
//
// All options have sensible defaults:
//   - Port: 8080
//   - Wait timeout: 25 seconds
//   - Title: "Cueboard"
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Cueboard, error) {
	cfg := &cbConfig{
		port:        defaultPort,
		waitTimeout: defaultWaitTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.port)
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Cueboard{
		title:           cfg.title,
		port:            cfg.port,
		waitTimeout:     cfg.waitTimeout,
		logger:          logger,
		changeCallbacks: cfg.changeCallbacks,
	}, nil
}

// Start creates the signal store and begins serving.
//
// Start is a blocking call that runs until the provided context is
// cancelled. During execution:
//
//   - The HTTP server starts on the configured port
//   - The controller is available at http://localhost:<port>
//   - The viewer is available at http://localhost:<port>/view
//   - Registered change callbacks fire on every committed mutation
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server
// fails to start.
func (c *Cueboard) Start(ctx context.Context) error {
	c.logger.Info("cueboard starting", "port", c.port)
	c.logger.Info("controller available", "url", fmt.Sprintf("http://localhost:%d", c.port))
	c.logger.Info("viewer available", "url", fmt.Sprintf("http://localhost:%d/view", c.port))

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	// derived context so an early error return also releases the
	// callback consumer
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cueStore := store.NewMemoryStore()

	// track the callback consumer goroutine to ensure clean shutdown
	var wg sync.WaitGroup
	if len(c.changeCallbacks) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.consumeChanges(ctx, cueStore)
		}()
	}

	httpServer, err := server.New(cueStore, c.port, web.Assets, c.title, c.waitTimeout, c.logger)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}
	if err := httpServer.Start(ctx); err != nil {
		cancel()
		wg.Wait()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	wg.Wait()
	c.logger.Info("cueboard stopped")
	return nil
}

// consumeChanges waits on the store and invokes the registered callbacks
// for every observed change. Rapid mutations coalesce: the consumer always
// sees the latest (signal, revision) pair, never a stale one.
func (c *Cueboard) consumeChanges(ctx context.Context, st store.Store) {
	_, rev := st.Get()
	for {
		sig, next, err := st.Wait(ctx, rev)
		if err != nil {
			// context cancelled; shutting down
			return
		}
		rev = next

		change := Change{
			Signal:   Signal(sig),
			Revision: uint64(next),
			At:       time.Now(),
		}
		for _, cb := range c.changeCallbacks {
			invokeCallbackSafe(cb, change, c.logger)
		}
	}
}

// invokeCallbackSafe calls a change callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Change), change Change, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change callback panicked",
				"panic", r,
				"signal", change.Signal,
				"revision", change.Revision,
			)
		}
	}()
	cb(change)
}

// Port returns the configured HTTP port.
func (c *Cueboard) Port() int {
	return c.port
}

// WaitTimeout returns the configured long-poll wait window.
func (c *Cueboard) WaitTimeout() time.Duration {
	return c.waitTimeout
}

// Title returns the configured page title, or "" when the default applies.
func (c *Cueboard) Title() string {
	return c.title
}
