// Package timescale provides free-function time-scale conversions used by
// the rest of this library's pure-math packages (search, eclipse, and the
// higher-level instant package's approximate fallbacks).
//
// Scale conversions here trade a small amount of accuracy for not depending
// on live IERS data: UTC<->TT uses a baked-in leap-second table and TT<->UT1
// uses the long-term Delta-T estimate rather than an observed UT1-UTC value.
// Callers that need IERS-backed precision should go through the iers
// package's Manager instead (see the instant package).
package timescale

import (
	"math"
	"time"
)

// SecPerDay is the number of SI seconds in a day.
const SecPerDay = 86400.0

const (
	unixEpochJD = 2440587.5
	ttMinusTAI  = 32.184 // seconds
)

// TimeToJDUTC converts a UTC time.Time to a Julian Date.
func TimeToJDUTC(t time.Time) float64 {
	u := t.UTC()
	days := float64(u.Unix()) / SecPerDay
	frac := float64(u.Nanosecond()) / 1e9 / SecPerDay
	return unixEpochJD + days + frac
}

// LeapSecondOffset returns TAI-UTC, in seconds, for the given UTC Julian
// Date. Dates before the first announced leap second return the initial
// 10 s offset; dates after the last announced leap second return the most
// recent known offset (this library has no forward knowledge of future
// leap seconds).
func LeapSecondOffset(jdUTC float64) float64 {
	offset := leapSecondTable[0].offset
	for _, e := range leapSecondTable {
		if jdUTC < e.jd {
			break
		}
		offset = e.offset
	}
	return offset
}

// UTCToTT converts a UTC Julian Date to TT: TT = UTC + (TAI-UTC) + 32.184s.
func UTCToTT(jdUTC float64) float64 {
	return jdUTC + (LeapSecondOffset(jdUTC)+ttMinusTAI)/SecPerDay
}

// TTToUT1 converts a TT Julian Date to UT1 using the long-term Delta-T
// estimate: UT1 = TT - DeltaT.
func TTToUT1(jdTT float64) float64 {
	year := 2000.0 + (jdTT-2451545.0)/365.25
	return jdTT - DeltaT(year)/SecPerDay
}

// TDBMinusTT returns TDB-TT, in seconds, using the dominant periodic term of
// the Fairhead & Bretagnon series (amplitude ~1.658 ms).
func TDBMinusTT(jdTT float64) float64 {
	T := (jdTT - 2451545.0) / 36525.0
	return 0.001657 * math.Sin(628.3076*T+6.2401)
}
