package cueboard

import "time"

// Signal is the current cue as observed through the SDK.
//
// A Signal is either [Clear], or one letter from [Letters] optionally
// followed by a single repetition digit ("V", "V2"). Using a string type
// allows for easy serialization and human-readable logging while keeping
// the value opaque to construct: signals are only produced by the running
// store, never parsed from consumer input.
type Signal string

// Clear is the signal value when no cue is active.
const Clear Signal = "-"

// Letters is the fixed alphabet of selectable cue letters.
const Letters = "CVBPWEXR"

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

// String returns the string representation of the signal.
// This implements the fmt.Stringer interface.
func (s Signal) String() string {
	return string(s)
}

// Change describes one committed mutation of the signal, delivered to
// functions registered with [WithChangeCallback].
//
// Change is immutable after creation. Revisions are dense: each committed
// mutation increments the counter by exactly 1, so a gap between two
// observed changes means the consumer coalesced intermediate states.
type Change struct {
	// Signal is the value after the mutation.
	Signal Signal

	// Revision is the store's counter after the mutation.
	Revision uint64

	// At is the timestamp when the change was observed.
	At time.Time
}
