package instant

import "github.com/pkg/errors"

// IntervalType fixes which endpoints of an Interval are included.
type IntervalType int

const (
	IntervalUndefined IntervalType = iota
	Closed                         // [start, end]
	Open                           // (start, end)
	HalfOpenLeft                   // (start, end]
	HalfOpenRight                  // [start, end)
)

// Interval is a span of time between two Instants.
type Interval struct {
	Start, End Instant
	Type       IntervalType
}

// ErrInvalidInterval is returned when End is not strictly after Start.
var ErrInvalidInterval = errors.New("instant: interval end must be after start")

// NewInterval validates and constructs an Interval.
func NewInterval(start, end Instant, t IntervalType) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start, end, t}, nil
}

// Duration returns the span of the interval.
func (iv Interval) Duration() Duration { return iv.End.Sub(iv.Start) }

// Contains reports whether i falls within the interval, honoring Type.
func (iv Interval) Contains(i Instant) bool {
	afterStart := i.After(iv.Start) || (iv.Type == Closed || iv.Type == HalfOpenRight) && i.Equal(iv.Start)
	beforeEnd := i.Before(iv.End) || (iv.Type == Closed || iv.Type == HalfOpenLeft) && i.Equal(iv.End)
	return afterStart && beforeEnd
}

// Grid returns a uniformly spaced slice of Instants covering the interval
// at the given step, starting at Start. The final grid point is <= End.
func (iv Interval) Grid(step Duration) []Instant {
	if step <= 0 {
		return nil
	}
	var grid []Instant
	for t := iv.Start; !t.After(iv.End); t = t.Add(step) {
		grid = append(grid, t)
	}
	return grid
}

// Intersects reports whether the two intervals overlap.
func (iv Interval) Intersects(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
