// Package instant provides the library's absolute-time value types: Scale,
// Duration, Instant, Date/Time/DateTime, and Interval. It builds on the
// timescale package's free-function conversions, generalizing them with an
// explicit EOPSource for UT1 and with format-tagged calendar types.
package instant

import "github.com/pkg/errors"

// Scale identifies one of the time scales the library can express an
// Instant in.
type Scale int

const (
	ScaleUndefined Scale = iota
	UTC
	TAI
	GPS
	TT
	UT1
	TDB
	TCG
)

func (s Scale) String() string {
	switch s {
	case UTC:
		return "UTC"
	case TAI:
		return "TAI"
	case GPS:
		return "GPS"
	case TT:
		return "TT"
	case UT1:
		return "UT1"
	case TDB:
		return "TDB"
	case TCG:
		return "TCG"
	default:
		return "Undefined"
	}
}

// ErrScaleConversionUnavailable is returned when a conversion needs EOP
// coverage (UTC<->UT1) that the configured EOPSource does not have.
var ErrScaleConversionUnavailable = errors.New("instant: scale conversion unavailable outside EOP coverage")

// gpsTAIOffsetSec is the fixed TAI-GPS offset: GPS time was aligned with
// UTC (and hence TAI-19s) at the 1980-01-06 epoch and has not accumulated
// leap seconds since.
const gpsTAIOffsetSec = 19.0

// EOPSource supplies Earth-orientation data needed for UTC<->UT1 and
// polar-motion-dependent frame transforms. Satisfied by *iers.Manager.
type EOPSource interface {
	// Ut1MinusUtcAt returns UT1-UTC, in seconds, for the given UTC Modified
	// Julian Date, or an error if the date falls outside loaded coverage.
	Ut1MinusUtcAt(mjdUTC float64) (float64, error)
}
