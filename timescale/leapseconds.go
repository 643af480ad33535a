package timescale

// leapEntry is one row of the TAI-UTC history: offset (seconds) effective
// from jd (UTC Julian Date) onward, until superseded by the next entry.
type leapEntry struct {
	jd     float64
	offset float64
}

// leapSecondTable is the append-only history of announced leap seconds
// (IERS Bulletin C), expressed as Julian Dates via gregorianToJD so the
// table reads as calendar dates rather than opaque JD magic numbers.
var leapSecondTable = buildLeapSecondTable()

func buildLeapSecondTable() []leapEntry {
	type row struct {
		year, month, day int
		offset           float64
	}
	rows := []row{
		{1972, 1, 1, 10},
		{1972, 7, 1, 11},
		{1973, 1, 1, 12},
		{1974, 1, 1, 13},
		{1975, 1, 1, 14},
		{1976, 1, 1, 15},
		{1977, 1, 1, 16},
		{1978, 1, 1, 17},
		{1979, 1, 1, 18},
		{1980, 1, 1, 19},
		{1981, 7, 1, 20},
		{1982, 7, 1, 21},
		{1983, 7, 1, 22},
		{1985, 7, 1, 23},
		{1988, 1, 1, 24},
		{1990, 1, 1, 25},
		{1991, 1, 1, 26},
		{1992, 7, 1, 27},
		{1993, 7, 1, 28},
		{1994, 7, 1, 29},
		{1996, 1, 1, 30},
		{1997, 7, 1, 31},
		{1999, 1, 1, 32},
		{2006, 1, 1, 33},
		{2009, 1, 1, 34},
		{2012, 7, 1, 35},
		{2015, 7, 1, 36},
		{2017, 1, 1, 37},
	}

	table := make([]leapEntry, len(rows))
	for i, r := range rows {
		table[i] = leapEntry{jd: gregorianToJD(r.year, r.month, r.day), offset: r.offset}
	}
	return table
}

// gregorianToJD returns the Julian Date at 00:00 UTC of the given Gregorian
// calendar date (Meeus, Astronomical Algorithms, ch. 7).
func gregorianToJD(year, month, day int) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	jd := float64(int(365.25*float64(y+4716))) +
		float64(int(30.6001*float64(m+1))) +
		float64(day) + float64(b) - 1524.5
	return jd
}
