package instant

import (
	"fmt"

	"github.com/pkg/errors"
)

// Format tags the textual representation a Date/Time/DateTime was parsed
// from, or that Format should produce.
type Format int

const (
	FormatUndefined Format = iota
	FormatStandard         // YYYY-MM-DD / HH:MM:SS.ffffff
	FormatISO8601          // YYYY-MM-DDTHH:MM:SS.ffffffZ
	FormatSTK              // DD Mon YYYY HH:MM:SS.ffffff
)

var monthAbbrev = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const minYear = 1400
const maxYear = 9999

// Date is a calendar date (proleptic Gregorian), year in [1400, 9999].
type Date struct {
	Year, Month, Day int
}

// ErrYearOutOfRange is returned by NewDate when the year falls outside the
// library's supported [1400, 9999] range.
var ErrYearOutOfRange = errors.New("instant: year out of supported range [1400, 9999]")

// NewDate validates and constructs a Date.
func NewDate(year, month, day int) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, ErrYearOutOfRange
	}
	if month < 1 || month > 12 {
		return Date{}, errors.Errorf("instant: invalid month %d", month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, errors.Errorf("instant: invalid day %d for %04d-%02d", day, year, month)
	}
	return Date{year, month, day}, nil
}

func daysInMonth(year, month int) int {
	days := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return days[month-1]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Format renders the date in the given textual format.
func (d Date) Format(f Format) string {
	switch f {
	case FormatSTK:
		return fmt.Sprintf("%02d %s %04d", d.Day, monthAbbrev[d.Month], d.Year)
	default: // FormatStandard, FormatISO8601
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

func (d Date) String() string { return d.Format(FormatStandard) }

// Time is a time-of-day with nanosecond resolution.
type Time struct {
	Hour, Minute, Second, Nanosecond int
}

// NewTime validates and constructs a Time. Second may be 60 to represent a
// positive leap second.
func NewTime(hour, minute, second, nanosecond int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, errors.Errorf("instant: invalid hour %d", hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, errors.Errorf("instant: invalid minute %d", minute)
	}
	if second < 0 || second > 60 {
		return Time{}, errors.Errorf("instant: invalid second %d", second)
	}
	if nanosecond < 0 || nanosecond >= 1e9 {
		return Time{}, errors.Errorf("instant: invalid nanosecond %d", nanosecond)
	}
	return Time{hour, minute, second, nanosecond}, nil
}

func (t Time) Format(f Format) string {
	if t.Nanosecond == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%06d", t.Hour, t.Minute, t.Second, t.Nanosecond/1000)
}

func (t Time) String() string { return t.Format(FormatStandard) }

// DateTime pairs a Date and a Time, both interpreted in UTC.
type DateTime struct {
	Date Date
	Time Time
}

// NewDateTime validates and constructs a DateTime.
func NewDateTime(year, month, day, hour, minute, second, nanosecond int) (DateTime, error) {
	date, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	tm, err := NewTime(hour, minute, second, nanosecond)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date, tm}, nil
}

func (dt DateTime) Format(f Format) string {
	switch f {
	case FormatISO8601:
		return dt.Date.Format(FormatISO8601) + "T" + dt.Time.Format(FormatISO8601) + "Z"
	case FormatSTK:
		return dt.Date.Format(FormatSTK) + " " + dt.Time.Format(FormatSTK)
	default:
		return dt.Date.Format(FormatStandard) + " " + dt.Time.Format(FormatStandard)
	}
}

func (dt DateTime) String() string { return dt.Format(FormatStandard) }

// ToInstant converts this DateTime (interpreted in the given scale) to an
// Instant.
func (dt DateTime) ToInstant(scale Scale) Instant {
	return FromDateTime(dt.Date.Year, dt.Date.Month, dt.Date.Day,
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second, dt.Time.Nanosecond, scale)
}

// DateTimeFromInstant returns the UTC calendar representation of an Instant.
func DateTimeFromInstant(i Instant) DateTime {
	t := i.ToDateTime()
	date := Date{t.Year(), int(t.Month()), t.Day()}
	tm := Time{t.Hour(), t.Minute(), t.Second(), t.Nanosecond()}
	return DateTime{date, tm}
}
