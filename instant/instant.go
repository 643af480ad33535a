package instant

import (
	"math"
	"time"

	"github.com/open-space-collective/ostk-physics-go/timescale"
)

// Instant represents a single point in time, stored internally as whole
// nanoseconds of TAI elapsed since the J2000 epoch (2000-01-01T12:00:00 TT,
// JD 2451545.0 TT). TAI is the library's internal scale because it is the
// only one of the seven that never jumps and never drifts: UTC has leap
// seconds, UT1 drifts with Earth's rotation, TDB/TCG wobble periodically
// relative to TT.
type Instant struct {
	taiNanosSinceJ2000 int64
}

const j2000JDTT = 2451545.0
const ttMinusTAISec = 32.184
const gpsMinusTAISec = -gpsTAIOffsetSec

var j2000JDTAI = j2000JDTT - ttMinusTAISec/timescale.SecPerDay

// J2000 is the Instant at 2000-01-01T12:00:00 TT.
var J2000 = Instant{0}

// UnixEpoch is the Instant at 1970-01-01T00:00:00 UTC.
var UnixEpoch = fromJDUTC(timescale.TimeToJDUTC(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))

// GPSEpoch is the Instant at 1980-01-06T00:00:00 UTC (GPS time origin).
var GPSEpoch = fromJDUTC(timescale.TimeToJDUTC(time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC)))

// ModifiedJulianDateEpoch is the Instant at MJD 0.0 (1858-11-17T00:00:00 UTC).
var ModifiedJulianDateEpoch = fromJDUTC(2400000.5)

func fromJDTAI(jdTAI float64) Instant {
	days := jdTAI - j2000JDTAI
	nanos := days * timescale.SecPerDay * 1e9
	return Instant{int64(math.Round(nanos))}
}

func fromJDUTC(jdUTC float64) Instant {
	return fromJDTAI(jdUTC + timescale.LeapSecondOffset(jdUTC)/timescale.SecPerDay)
}

func (i Instant) jdTAI() float64 {
	return j2000JDTAI + float64(i.taiNanosSinceJ2000)/1e9/timescale.SecPerDay
}

// FromDateTime builds an Instant from calendar components expressed in the
// given scale. Only UTC, TAI, TT, GPS, and TDB are accepted here; UT1
// requires FromUT1, since it needs EOP data.
func FromDateTime(year, month, day, hour, minute, sec, nsec int, scale Scale) Instant {
	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.UTC)
	jd := timescale.TimeToJDUTC(t)
	return FromJulianDate(jd, scale)
}

// FromJulianDate builds an Instant from a Julian Date expressed in the
// given scale. UT1 is not accepted; use FromUT1.
func FromJulianDate(jd float64, scale Scale) Instant {
	switch scale {
	case UTC:
		return fromJDUTC(jd)
	case TAI:
		return fromJDTAI(jd)
	case TT:
		return fromJDTAI(jd - ttMinusTAISec/timescale.SecPerDay)
	case GPS:
		return fromJDTAI(jd - gpsMinusTAISec/timescale.SecPerDay)
	case TDB:
		// TDB differs from TT by a <2ms periodic term; invert iteratively
		// (one Newton step suffices given the tiny amplitude).
		jdTT := jd
		for iter := 0; iter < 2; iter++ {
			jdTT = jd - timescale.TDBMinusTT(jdTT)/timescale.SecPerDay
		}
		return fromJDTAI(jdTT - ttMinusTAISec/timescale.SecPerDay)
	default:
		return fromJDTAI(jd)
	}
}

// FromModifiedJulianDate builds an Instant from a Modified Julian Date
// (JD - 2400000.5) in the given scale.
func FromModifiedJulianDate(mjd float64, scale Scale) Instant {
	return FromJulianDate(mjd+2400000.5, scale)
}

// FromUT1 builds an Instant from a UT1 Julian Date using an EOPSource for
// the UT1-UTC offset at the (approximate) corresponding UTC date.
func FromUT1(jdUT1 float64, eop EOPSource) (Instant, error) {
	mjdApprox := jdUT1 - 2400000.5
	offset, err := eop.Ut1MinusUtcAt(mjdApprox)
	if err != nil {
		return Instant{}, err
	}
	jdUTC := jdUT1 - offset/timescale.SecPerDay
	return fromJDUTC(jdUTC), nil
}

// ToJulianDate returns the Julian Date of this Instant in the given scale.
// UT1 is not accepted; use ToUT1.
func (i Instant) ToJulianDate(scale Scale) float64 {
	jdTAI := i.jdTAI()
	switch scale {
	case UTC:
		// Leap-second offset is a function of UTC JD; iterate once since
		// the offset only changes on whole-second boundaries.
		jdUTC := jdTAI - timescale.LeapSecondOffset(jdTAI)/timescale.SecPerDay
		jdUTC = jdTAI - timescale.LeapSecondOffset(jdUTC)/timescale.SecPerDay
		return jdUTC
	case TAI:
		return jdTAI
	case TT:
		return jdTAI + ttMinusTAISec/timescale.SecPerDay
	case GPS:
		return jdTAI + gpsMinusTAISec/timescale.SecPerDay
	case TDB:
		jdTT := jdTAI + ttMinusTAISec/timescale.SecPerDay
		return jdTT + timescale.TDBMinusTT(jdTT)/timescale.SecPerDay
	default:
		return jdTAI
	}
}

// ToUT1 returns the UT1 Julian Date of this Instant using an EOPSource for
// the UT1-UTC offset.
func (i Instant) ToUT1(eop EOPSource) (float64, error) {
	jdUTC := i.ToJulianDate(UTC)
	offset, err := eop.Ut1MinusUtcAt(jdUTC - 2400000.5)
	if err != nil {
		return 0, err
	}
	return jdUTC + offset/timescale.SecPerDay, nil
}

// ToModifiedJulianDate returns the Modified Julian Date in the given scale.
func (i Instant) ToModifiedJulianDate(scale Scale) float64 {
	return i.ToJulianDate(scale) - 2400000.5
}

// ToDateTime returns the UTC calendar representation of this Instant.
func (i Instant) ToDateTime() time.Time {
	jdUTC := i.ToJulianDate(UTC)
	unixSec := (jdUTC - 2440587.5) * timescale.SecPerDay
	sec := math.Floor(unixSec)
	nsec := (unixSec - sec) * 1e9
	return time.Unix(int64(sec), int64(math.Round(nsec))).UTC()
}

// Add returns the Instant d later (d may be negative).
func (i Instant) Add(d Duration) Instant {
	return Instant{i.taiNanosSinceJ2000 + int64(d)}
}

// Sub returns the Duration elapsed from other to i (i - other).
func (i Instant) Sub(other Instant) Duration {
	return Duration(i.taiNanosSinceJ2000 - other.taiNanosSinceJ2000)
}

// Before reports whether i occurs strictly before other.
func (i Instant) Before(other Instant) bool { return i.taiNanosSinceJ2000 < other.taiNanosSinceJ2000 }

// After reports whether i occurs strictly after other.
func (i Instant) After(other Instant) bool { return i.taiNanosSinceJ2000 > other.taiNanosSinceJ2000 }

// Equal reports whether i and other are the exact same instant.
func (i Instant) Equal(other Instant) bool { return i.taiNanosSinceJ2000 == other.taiNanosSinceJ2000 }

// IsNear reports whether i and other differ by no more than tolerance.
func (i Instant) IsNear(other Instant, tolerance Duration) bool {
	diff := i.Sub(other)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// NanosecondsSinceJ2000TAI exposes the internal TAI-nanosecond count
// directly. Intended for callers (such as the frame registry's transform
// cache) that need a cheap, totally-ordered integer key for an Instant
// rather than its Julian Date in some scale.
func (i Instant) NanosecondsSinceJ2000TAI() int64 { return i.taiNanosSinceJ2000 }
