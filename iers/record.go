// Package iers manages IERS Earth-orientation data (Bulletin A and the
// combined Finals2000A product): polar motion, UT1-UTC, and length-of-day,
// all indexed by Modified Julian Date.
package iers

// Record is one day's worth of Earth-orientation parameters, as carried by
// both BulletinA and Finals2000A (the latter simply has more columns
// populated once the final, non-predicted values are available).
type Record struct {
	MJD float64

	// PolarMotionX/Y are in arcseconds.
	PolarMotionX float64
	PolarMotionY float64

	// UT1MinusUTC is in seconds.
	UT1MinusUTC float64

	// LOD is the length-of-day excess over 86400 SI seconds, in
	// milliseconds.
	LOD float64

	// CelestialPoleOffsetX/Y are the Bulletin A celestial pole offsets
	// dX, dY with respect to the IAU 2000A precession-nutation model, in
	// arcseconds. They correct the series' residual error against VLBI
	// observation and are applied directly to the CIP position.
	CelestialPoleOffsetX float64
	CelestialPoleOffsetY float64

	// Predicted is true for rows from Bulletin A's predicted span rather
	// than its observed span; for Finals2000A rows it comes from the row's
	// observed/predicted flag columns.
	Predicted bool
}

// BulletinA is the twice-weekly IERS product: observed data for the
// recent past plus a rapid-turnaround prediction for the near future.
type BulletinA struct {
	Records []Record // MJD-ordered
}

// Finals2000A is the IERS product combining Bulletin A/B with the final,
// reconciled EOP series once it becomes available.
type Finals2000A struct {
	Records []Record // MJD-ordered
}
