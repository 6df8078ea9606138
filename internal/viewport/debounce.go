package viewport

import "time"

// DebounceQuiet is how long resize events must stay quiet before the pending
// dimensions are released.
const DebounceQuiet = 100 * time.Millisecond

// Debouncer coalesces bursts of resize events. Each Observe replaces the
// pending dimensions and pushes the release deadline out; Fire hands the last
// observed dimensions over once the quiet period has passed.
//
// It keeps no timer of its own: the owner polls Fire with its clock, which
// keeps the type trivially testable.
type Debouncer struct {
	quiet    time.Duration
	pending  bool
	width    int
	height   int
	deadline time.Time
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive quiet period falls back to DebounceQuiet.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DebounceQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Observe records a resize event at the given time.
func (d *Debouncer) Observe(width, height int, now time.Time) {
	d.pending = true
	d.width = width
	d.height = height
	d.deadline = now.Add(d.quiet)
}

// Fire returns the coalesced dimensions once the quiet period has elapsed.
// ok is false while events are still arriving or nothing is pending.
func (d *Debouncer) Fire(now time.Time) (width, height int, ok bool) {
	if !d.pending || now.Before(d.deadline) {
		return 0, 0, false
	}
	d.pending = false
	return d.width, d.height, true
}

// Pending reports whether an unreleased resize is waiting.
func (d *Debouncer) Pending() bool {
	return d.pending
}
