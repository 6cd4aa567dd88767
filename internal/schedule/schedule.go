// Package schedule provides the timer and clock collaborators injected into
// the conversation engine. Callbacks scheduled here are expected to run on
// the owner's event loop; Virtual runs them from Advance and Posted runs them
// from Fire.
package schedule

import "time"

// TimerID identifies a scheduled callback.
type TimerID uint64

// Scheduler defers a callback and allows it to be cancelled before it fires.
type Scheduler interface {
	// AfterFunc schedules fn to run once after d.
	AfterFunc(d time.Duration, fn func()) TimerID
	// Cancel prevents a scheduled callback from running. It reports whether
	// the callback was still pending.
	Cancel(id TimerID) bool
}

// Clock supplies timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
