// Package booking implements the allocation core of the marketplace:
// conflict detection over reservation time windows, capacity unit
// assignment and the reservation status ledger.  It is written against
// the Store interface so the same logic runs on MySQL in production
// and on the in-memory store in tests.
package booking

import "time"

// Window is a half-open time interval [Start, End).  The end instant is
// excluded so that back-to-back reservations never conflict: a window
// ending at 16:00 does not overlap one starting at 16:00.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates and builds a Window.  The end must be strictly
// after the start; zero-duration and inverted windows are rejected
// with ErrInvalidWindow.
func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether two half-open windows intersect.  Using
// strict inequalities on both bounds gives the standard interval
// overlap predicate: a.Start < b.End && b.Start < a.End.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
