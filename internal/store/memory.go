package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/stagecue/cueboard/internal/metrics"
)

// MemoryStore is the in-memory implementation of [Store].
//
// One mutex guards the (signal, revision) pair together with the current
// generation channel. Each committed mutation closes that channel and
// installs a fresh one, so every waiter suspended on the old generation
// wakes in the same wave. Waiters capture the channel under the same lock
// they use to check the revision, which is what rules out the lost-wakeup
// race between "check" and "register".
type MemoryStore struct {
	mu      sync.Mutex
	signal  Signal
	rev     Revision
	changed chan struct{}
}

// NewMemoryStore creates a [MemoryStore] initialized to the clear signal
// at revision 0. The store is immediately ready for use and needs no
// cleanup.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		signal:  Clear,
		changed: make(chan struct{}),
	}
}

// Get returns the current signal and revision as one consistent pair.
func (m *MemoryStore) Get() (Signal, Revision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signal, m.rev
}

// SetLetter replaces the signal with the given letter and bumps the
// revision. Any active digit is dropped: selecting a letter always starts
// a fresh cue.
func (m *MemoryStore) SetLetter(letter string) error {
	if !ValidLetter(letter) {
		return fmt.Errorf("set letter %q: %w", letter, ErrInvalidLetter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.commit(Signal(letter), "letter")
	return nil
}

// AppendDigit sets the repetition digit on the current letter, replacing
// any previous one. Without an active letter the digit has nothing to
// attach to, so the call is a silent no-op rather than an error.
func (m *MemoryStore) AppendDigit(digit string) error {
	if !ValidDigit(digit) {
		return fmt.Errorf("append digit %q: %w", digit, ErrInvalidDigit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signal.IsClear() {
		return nil
	}
	m.commit(Signal(m.signal.Letter()+digit), "digit")
	return nil
}

// Clear resets the signal and reports whether anything changed. Clearing an
// already-clear signal does not bump the revision, so idle viewers are not
// woken for nothing.
func (m *MemoryStore) Clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signal.IsClear() {
		return false
	}
	m.commit(Clear, "clear")
	return true
}

// commit applies a state change and wakes the current waiter generation.
// Callers must hold m.mu.
func (m *MemoryStore) commit(s Signal, op string) {
	m.signal = s
	m.rev++
	close(m.changed)
	m.changed = make(chan struct{})
	metrics.Mutations.WithLabelValues(op).Inc()
}

// Wait blocks until the revision advances past baseline or ctx ends.
//
// The revision check and the capture of the generation channel happen under
// the store mutex, so a mutation committed concurrently with registration
// is either observed by the immediate-return check or closes the captured
// channel; there is no window where a waiter can miss it. After a wakeup
// the loop re-checks, which keeps the contract correct even for a waiter
// whose baseline was already stale by more than one revision.
func (m *MemoryStore) Wait(ctx context.Context, baseline Revision) (Signal, Revision, error) {
	for {
		m.mu.Lock()
		if m.rev > baseline {
			s, r := m.signal, m.rev
			m.mu.Unlock()
			return s, r, nil
		}
		ch := m.changed
		m.mu.Unlock()

		metrics.Waiters.Inc()
		select {
		case <-ch:
			metrics.Waiters.Dec()
		case <-ctx.Done():
			metrics.Waiters.Dec()
			return "", 0, fmt.Errorf("%w: %w", ErrWaitCanceled, ctx.Err())
		}
	}
}
