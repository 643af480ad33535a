package instant

import "fmt"

// Duration is a signed span of time, stored in nanoseconds as an int64, so
// its range is the same as time.Duration's (about +-292 years).
type Duration int64

const (
	Nanosecond  Duration = 1
	Microsecond          = 1000 * Nanosecond
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
)

// DurationFromSeconds builds a Duration from a (possibly fractional) number
// of seconds.
func DurationFromSeconds(sec float64) Duration {
	return Duration(sec * float64(Second))
}

// DurationFromDays builds a Duration from a (possibly fractional) number of
// days.
func DurationFromDays(days float64) Duration {
	return Duration(days * float64(Day))
}

func (d Duration) Seconds() float64 { return float64(d) / float64(Second) }
func (d Duration) Minutes() float64 { return float64(d) / float64(Minute) }
func (d Duration) Hours() float64   { return float64(d) / float64(Hour) }
func (d Duration) Days() float64    { return float64(d) / float64(Day) }

func (d Duration) Add(other Duration) Duration { return d + other }
func (d Duration) Sub(other Duration) Duration { return d - other }
func (d Duration) Scale(factor float64) Duration {
	return Duration(float64(d) * factor)
}
func (d Duration) Negate() Duration { return -d }

func (d Duration) IsZero() bool     { return d == 0 }
func (d Duration) IsPositive() bool { return d > 0 }
func (d Duration) IsNegative() bool { return d < 0 }

func (d Duration) String() string {
	return fmt.Sprintf("%.9fs", d.Seconds())
}
