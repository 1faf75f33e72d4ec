// Package store holds the one piece of shared state in cueboard: the
// current signal and its revision counter.
//
// The main components are:
//
//   - [Store]: interface over the signal state and change notification
//   - [MemoryStore]: the in-memory implementation
//   - [Signal] and [Revision]: the value pair every reader observes
//
// Mutations are linearized by a single mutex, so the revision counter is a
// total order over committed changes. [Store.Wait] gives long-poll and
// websocket handlers "block until the next change" semantics without
// polling: waiters park on a generation channel that each commit closes,
// and the check-then-register step shares the mutation lock so no wakeup
// can be lost between the two.
//
// State is memory-only and resets on restart; there is no persistence.
package store
