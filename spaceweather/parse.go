package spaceweather

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// minFields is field 0..32: YYYY MM DD BSRN ND KP1..8 KP_SUM AP1..8 AP_AVG
// CP C9 ISN F10.7_OBS F10.7_ADJ DATA_TYPE F10.7_OBS_CENTER81
// F10.7_OBS_LAST81 F10.7_ADJ_CENTER81 F10.7_ADJ_LAST81 — the columns of the
// CSSI space-weather flat file's per-day data rows. Section banners
// ("BEGIN OBSERVED", "END DAILY_PREDICTED", ...) and the file's leading
// metadata block are skipped; the DATA_TYPE column alone classifies each
// row, which is what Record.Type actually needs.
const minFields = 33

// ParseCSSI parses the CSSI space-weather flat file format (CelesTrak's
// SW-All.txt), returning one Record per data row. Non-data lines (section
// banners, metadata header, blank lines) are skipped.
func ParseCSSI(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < minFields {
			continue
		}
		rec, ok := parseRow(fields)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "spaceweather: scanning CSSI file")
	}
	return records, nil
}

func parseRow(f []string) (Record, bool) {
	year, err := strconv.Atoi(f[0])
	if err != nil {
		return Record{}, false
	}
	month, err := strconv.Atoi(f[1])
	if err != nil {
		return Record{}, false
	}
	day, err := strconv.Atoi(f[2])
	if err != nil {
		return Record{}, false
	}

	var rec Record
	rec.Date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		v, err := strconv.ParseFloat(f[5+i], 64)
		if err != nil {
			return Record{}, false
		}
		rec.Kp[i] = v / 10.0
	}
	for i := 0; i < 8; i++ {
		v, err := strconv.Atoi(f[14+i])
		if err != nil {
			return Record{}, false
		}
		rec.Ap[i] = v
	}
	apAvg, err := strconv.Atoi(f[22])
	if err != nil {
		return Record{}, false
	}
	rec.ApDaily = apAvg

	rec.F107Observed, _ = strconv.ParseFloat(f[26], 64)
	rec.F107Adjusted, _ = strconv.ParseFloat(f[27], 64)
	rec.Type = dataTypeFromField(f[28])
	rec.F107ObservedCenter81, _ = strconv.ParseFloat(f[29], 64)
	rec.F107ObservedLast81, _ = strconv.ParseFloat(f[30], 64)
	rec.F107AdjustedCenter81, _ = strconv.ParseFloat(f[31], 64)
	rec.F107AdjustedLast81, _ = strconv.ParseFloat(f[32], 64)

	return rec, true
}
