package cueboard

import (
	"errors"
	"log/slog"
	"time"
)

// cbConfig holds mutable state during Cueboard construction.
type cbConfig struct {
	title           string
	port            int
	waitTimeout     time.Duration
	logger          *slog.Logger
	changeCallbacks []func(Change)
}

// Option is a function that configures a [Cueboard] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithPort], [WithWaitTimeout], [WithTitle],
// [WithLogger], [WithChangeCallback].
type Option func(*cbConfig) error

// WithPort sets the HTTP port for the server.
//
// The controller will be available at http://localhost:<port> and the
// viewer at http://localhost:<port>/view. Defaults to 8080 if not
// specified.
//
// Example:
//
//	cb, err := cueboard.New(
//	    cueboard.WithPort(9090),
//	)
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *cbConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithWaitTimeout sets how long a long-poll request may stay suspended
// before it is released with a "no change" response.
//
// Shorter windows detect abandoned clients faster at the cost of more
// re-polls; longer windows hold connections open longer. Defaults to 25
// seconds, which stays under common proxy idle timeouts.
//
// Example:
//
//	cb, err := cueboard.New(
//	    cueboard.WithWaitTimeout(30 * time.Second),
//	)
//
// Returns an error if the duration is below 1 second or above 5 minutes.
func WithWaitTimeout(d time.Duration) Option {
	return func(cfg *cbConfig) error {
		if d < time.Second || d > 5*time.Minute {
			return errors.New("wait timeout must be between 1s and 5m")
		}
		cfg.waitTimeout = d
		return nil
	}
}

// WithTitle sets the title displayed in the browser tab and the controller
// header.
//
// If not specified, defaults to "Cueboard".
//
// Example:
//
//	cb, err := cueboard.New(
//	    cueboard.WithTitle("Saturday Night Set"),
//	)
func WithTitle(title string) Option {
	return func(cfg *cbConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Cueboard instance.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	cb, err := cueboard.New(
//	    cueboard.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *cbConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithChangeCallback registers a function to be called on every committed
// signal mutation.
//
// The callback receives a [Change] with the new signal value, the revision,
// and an observation timestamp. Multiple callbacks may be registered by
// calling WithChangeCallback multiple times; they execute in registration
// order.
//
// IMPORTANT: Callbacks must be non-blocking. Long-running operations should
// dispatch work to a separate goroutine. Callbacks are invoked from a
// single consumer goroutine that coalesces rapid mutations: each invocation
// carries the latest state, but intermediate revisions may be skipped.
//
// Panics within callbacks are recovered and logged; they do not crash the
// server.
//
// Example:
//
//	cb, err := cueboard.New(
//	    cueboard.WithChangeCallback(func(c cueboard.Change) {
//	        log.Printf("cue is now %s (rev %d)", c.Signal, c.Revision)
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithChangeCallback(cb func(Change)) Option {
	return func(cfg *cbConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.changeCallbacks = append(cfg.changeCallbacks, cb)
		return nil
	}
}
