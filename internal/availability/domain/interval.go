package domain

import (
	"errors"
	"time"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// Interval is a closed-open time range [Start, End).
// Intervals are treated as immutable values: derived ranges are always
// recomputed, never mutated in place.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval, rejecting degenerate or negative ranges.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidTimeRange
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals intersect.
// Zero-length intervals never overlap anything, including themselves.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Touches reports whether the intervals overlap or share a boundary.
func (i Interval) Touches(other Interval) bool {
	return i.Overlaps(other) || i.End.Equal(other.Start) || other.End.Equal(i.Start)
}

// Overlaps is the half-open interval intersection predicate:
// [aStart, aEnd) and [bStart, bEnd) intersect iff aStart < bEnd && bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
