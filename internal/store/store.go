package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Clear is the signal value shown when no cue is active.
const Clear Signal = "-"

// Letters is the fixed alphabet of selectable cue letters.
const Letters = "CVBPWEXR"

var (
	// ErrInvalidInput is the common kind wrapped by all input validation
	// errors. Use errors.Is(err, ErrInvalidInput) to detect a rejected
	// payload regardless of which field was malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidLetter indicates a letter outside the fixed cue alphabet.
	ErrInvalidLetter = fmt.Errorf("letter must be one of %s: %w", Letters, ErrInvalidInput)

	// ErrInvalidDigit indicates a digit payload outside 0-9.
	ErrInvalidDigit = fmt.Errorf("digit must be 0-9: %w", ErrInvalidInput)

	// ErrWaitCanceled indicates a Wait ended before a change arrived,
	// either because the request context was canceled (client gone) or its
	// deadline expired (long-poll timeout). It wraps the context error.
	ErrWaitCanceled = errors.New("wait canceled")
)

// Signal is the current cue: either [Clear], or one letter from [Letters]
// optionally followed by a single digit.
//
// Signal is a string type so it serializes and logs as-is. Values are only
// produced by the store; handlers never construct one from raw input.
type Signal string

// IsClear reports whether no cue is active.
func (s Signal) IsClear() bool {
	return s == Clear
}

// Letter returns the cue letter, or "" when the signal is clear.
func (s Signal) Letter() string {
	if s.IsClear() || len(s) == 0 {
		return ""
	}
	return string(s[0])
}

// Digit returns the repetition digit, or "" when none is set.
func (s Signal) Digit() string {
	if s.IsClear() || len(s) < 2 {
		return ""
	}
	return string(s[1])
}

// String implements fmt.Stringer.
func (s Signal) String() string {
	return string(s)
}

// Display returns the text shown to viewers. A clear signal renders as a
// zero-width space so the display keeps its vertical space.
func (s Signal) Display() string {
	if s.IsClear() {
		return "​"
	}
	return string(s)
}

// Revision counts committed mutations. It starts at 0 and increments by
// exactly 1 on every state change, never on no-ops or rejected input.
type Revision uint64

// ValidLetter reports whether s is a single letter from [Letters].
func ValidLetter(s string) bool {
	return len(s) == 1 && strings.Contains(Letters, s)
}

// ValidDigit reports whether s is a single character 0-9.
func ValidDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// Store is the single authoritative holder of the current signal.
//
// Implementations must be safe for concurrent use: the (Signal, Revision)
// pair always mutates together, readers never observe a torn pair, and
// checking the revision plus registering to be woken is one atomic step so
// a notification can never fall between the two.
type Store interface {
	// Get returns the current signal and revision as one consistent pair.
	Get() (Signal, Revision)

	// SetLetter replaces the signal with the given letter, dropping any
	// digit, and bumps the revision. Input outside [Letters] returns
	// ErrInvalidLetter and leaves state untouched.
	SetLetter(letter string) error

	// AppendDigit sets the repetition digit on the current letter,
	// replacing any previous digit, and bumps the revision. With no letter
	// active this is a no-op: nil error, no bump, no notification. Input
	// outside 0-9 returns ErrInvalidDigit and leaves state untouched.
	AppendDigit(digit string) error

	// Clear resets the signal to [Clear] and bumps the revision, returning
	// true. When already clear it is a no-op and returns false.
	Clear() bool

	// Wait blocks until the revision advances past baseline, then returns
	// the current pair. If the revision is already past baseline it returns
	// immediately without suspending. When ctx ends first it returns
	// ErrWaitCanceled wrapping the context error.
	Wait(ctx context.Context, baseline Revision) (Signal, Revision, error)
}
