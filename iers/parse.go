package iers

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Fixed-column byte offsets within each finals2000A.data / finals.all
// record, per the IERS EOP product readme (0-indexed, end-exclusive).
const (
	colMJDStart, colMJDEnd               = 7, 15
	colPMFlag                            = 16
	colPMXStart, colPMXEnd               = 18, 27
	colPMYStart, colPMYEnd               = 37, 46
	colUT1Flag                           = 57
	colUT1Start, colUT1End               = 58, 68
	colLODStart, colLODEnd               = 79, 86
	colDXStart, colDXEnd                 = 99, 106
	colDYStart, colDYEnd                 = 116, 123
)

// masToArcsec converts milliarcseconds (the units finals2000A.data reports
// dX/dY in) to arcseconds (the units this package uses for every other
// angular EOP quantity).
const masToArcsec = 1.0 / 1000.0

func parseField(line string, start, end int) (float64, bool) {
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return 0, false
	}
	s := strings.TrimSpace(line[start:end])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFinals parses a finals.data/finals2000A.data fixed-column stream
// into MJD-ordered Records. Rows missing the observed polar-motion or
// UT1-UTC fields (beyond the end of the observed span) are skipped; the
// Predicted flag is set from the IERS prediction-flag columns.
func ParseFinals(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 4096)

	var records []Record
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < colUT1End {
			continue // header, blank, or truncated trailing line
		}

		mjd, ok := parseField(line, colMJDStart, colMJDEnd)
		if !ok {
			continue
		}

		pmx, pmxOK := parseField(line, colPMXStart, colPMXEnd)
		pmy, pmyOK := parseField(line, colPMYStart, colPMYEnd)
		ut1, ut1OK := parseField(line, colUT1Start, colUT1End)
		if !pmxOK || !pmyOK || !ut1OK {
			continue
		}
		lod, _ := parseField(line, colLODStart, colLODEnd)

		// dX/dY are absent beyond Bulletin A's nutation span; that's fine,
		// they default to zero (no CIP correction) rather than dropping
		// the whole row the way a missing PM/UT1 field does.
		dx, _ := parseField(line, colDXStart, colDXEnd)
		dy, _ := parseField(line, colDYStart, colDYEnd)

		predicted := false
		if colPMFlag < len(line) && line[colPMFlag] == 'P' {
			predicted = true
		}
		if colUT1Flag < len(line) && line[colUT1Flag] == 'P' {
			predicted = true
		}

		records = append(records, Record{
			MJD:                  mjd,
			PolarMotionX:         pmx,
			PolarMotionY:         pmy,
			UT1MinusUTC:          ut1,
			LOD:                  lod,
			CelestialPoleOffsetX: dx * masToArcsec,
			CelestialPoleOffsetY: dy * masToArcsec,
			Predicted:            predicted,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "iers: scanning finals data")
	}
	return records, nil
}
