package timescale

import "sort"

// deltaTEntry is one (year, DeltaT-in-seconds) row.
type deltaTEntry struct {
	year, value float64
}

// deltaTTable holds decadal historical estimates through 1990 (the shape
// mirrors the long-period Stephenson & Morrison Delta-T reconstruction: a
// dip through the mid-1800s followed by the well-documented 20th-century
// rise), then annual values from 2000 onward generated from the near-term
// NASA/Espenak quadratic so recent-year lookups interpolate between
// adjacent single-year rows.
var deltaTTable = buildDeltaTTable()

func buildDeltaTTable() []deltaTEntry {
	historical := []deltaTEntry{
		{1800, 18.3670},
		{1810, 16.5},
		{1820, 15.0},
		{1830, 12.2},
		{1840, 9.5},
		{1850, 7.8},
		{1860, 6.5},
		{1870, 5.0},
		{1880, 5.8},
		{1890, 7.5},
		{1900, 10.4},
		{1910, 14.6},
		{1920, 20.6},
		{1930, 24.3},
		{1940, 24.5},
		{1950, 29.2},
		{1960, 33.2},
		{1970, 40.2},
		{1980, 50.5},
		{1990, 57.0},
	}

	table := append([]deltaTEntry(nil), historical...)
	for year := 2000; year <= 2200; year++ {
		t := float64(year - 2000)
		value := 63.829 + 0.3232*t + 0.005589*t*t
		table = append(table, deltaTEntry{year: float64(year), value: value})
	}
	return table
}

// DeltaT returns an estimate of TT-UT1, in seconds, for the given decimal
// year. Years before the first table entry or after the last clamp to the
// boundary entry's value.
func DeltaT(year float64) float64 {
	n := len(deltaTTable)
	if year <= deltaTTable[0].year {
		return deltaTTable[0].value
	}
	if year >= deltaTTable[n-1].year {
		return deltaTTable[n-1].value
	}

	idx := sort.Search(n, func(i int) bool { return deltaTTable[i].year >= year })
	if idx >= n-1 {
		idx = n - 2
	}
	lo, hi := deltaTTable[idx], deltaTTable[idx+1]
	if lo.year > year && idx > 0 {
		lo, hi = deltaTTable[idx-1], deltaTTable[idx]
	}

	frac := (year - lo.year) / (hi.year - lo.year)
	return lo.value + frac*(hi.value-lo.value)
}
