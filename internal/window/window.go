package window

import (
	"time"
)

// Window is a half-open time range [Start, End) resolved from a logical scope.
// A zero Window is empty and matches no rows.
type Window struct {
	Start time.Time
	End   time.Time
}

// FromLookback resolves "last N days" relative to now. A zero or negative
// lookback yields an empty window rather than an error, so dashboard callers
// never have to special-case bad input.
func FromLookback(now time.Time, days int) Window {
	if days <= 0 {
		return Window{}
	}
	return Window{
		Start: now.AddDate(0, 0, -days),
		End:   now,
	}
}

// FromRange resolves an explicit range. A range with start after end yields an
// empty window.
func FromRange(start, end time.Time) Window {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return Window{}
	}
	return Window{Start: start, End: end}
}

// IsEmpty reports whether the window matches no rows.
func (w Window) IsEmpty() bool {
	return w.Start.IsZero() || w.End.IsZero() || !w.Start.Before(w.End)
}

// Contains reports whether the timestamp falls inside the window.
func (w Window) Contains(at time.Time) bool {
	if w.IsEmpty() {
		return false
	}
	return !at.Before(w.Start) && at.Before(w.End)
}

// Days returns the span of the window in whole days, rounding partial days up.
// Empty windows span zero days.
func (w Window) Days() int {
	if w.IsEmpty() {
		return 0
	}
	span := w.End.Sub(w.Start)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Split partitions the window into two disjoint windows at the given instant.
// If the instant falls outside the window the original window and an empty one
// are returned.
func (w Window) Split(at time.Time) (Window, Window) {
	if w.IsEmpty() || !at.After(w.Start) || !at.Before(w.End) {
		return w, Window{}
	}
	return Window{Start: w.Start, End: at}, Window{Start: at, End: w.End}
}
