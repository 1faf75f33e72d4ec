// Package cueboard provides a lightweight, embeddable real-time cue
// broadcaster for live performance.
//
// A director selects the current song section — one letter from a fixed
// alphabet, optionally followed by a repetition digit — and cueboard pushes
// the value to any number of passive displays the moment it changes. One
// process holds one signal; there are no rooms, no accounts, and no
// persistence.
//
// Cueboard is designed as an SDK-first library, allowing developers to
// embed the broadcaster in their applications, with a standalone binary
// (cmd/cueboard) for YAML-configured deployment.
//
// # Quick Start
//
// Create a board and start it with graceful shutdown:
//
//	cb, _ := cueboard.New(cueboard.WithTitle("Saturday Night Set"))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	cb.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Cueboard uses the functional options pattern for configuration:
//
//	cb, err := cueboard.New(
//	    cueboard.WithPort(9090),
//	    cueboard.WithWaitTimeout(30 * time.Second),
//	    cueboard.WithTitle("Main Stage"),
//	    cueboard.WithChangeCallback(func(c cueboard.Change) {
//	        log.Printf("cue %s at revision %d", c.Signal, c.Revision)
//	    }),
//	)
//
// # Architecture
//
// Cueboard consists of several internal packages (under internal/):
//
//   - internal/store: the signal store with revision-based change notification
//   - internal/server: HTTP pages, long-poll fragment endpoint, and websocket push
//   - internal/metrics: Prometheus collectors
//   - web: embedded controller and viewer assets
//
// The internal packages are not part of the public API and may change
// without notice. The library is designed for single-binary deployment
// using Go's embed directive for static assets.
package cueboard
