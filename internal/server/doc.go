// Package server provides the HTTP surface for cueboard.
//
// This package is internal to cueboard and handles all HTTP concerns:
//
//   - Pages: the director (controller) page at "/" and the viewer at "/view"
//   - Fragment: the current-state fragment at "/cue", long-polling via ?rev=N
//   - Control: PUT /cue/letter, PUT /cue/digit, DELETE /cue
//   - Push: a websocket at "/cue/ws" that re-sends the fragment on change
//   - Operations: "/metrics" (Prometheus) and "/healthz"
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests. Cancelling the server context
// also releases every suspended long-poll waiter and websocket loop.
//
// Users of the cueboard library should not need to interact with this
// package directly. The server is started by [cueboard.Cueboard.Start].
package server
