// Package daykey derives and shifts canonical local-calendar day keys.
//
// A Key is the ISO-8601 date ("2006-01-02") of a day in time.Local. Keys
// compare lexicographically in chronological order.
package daykey

import (
	"fmt"
	"strings"
	"time"
)

// Format is the canonical key layout.
const Format = "2006-01-02"

// readFormat is permissive and accepts single-digit months and days.
const readFormat = "2006-1-2"

// Key identifies one local calendar day.
type Key string

// New returns the key for the given calendar date, normalized the way
// time.Date normalizes out of range values.
func New(year int, month time.Month, day int) Key {
	return Key(noon(year, month, day).Format(Format))
}

// FromTime returns the key of the local calendar day t falls on.
func FromTime(t time.Time) Key {
	return New(t.In(time.Local).Date())
}

// Today returns the key of the current local day.
func Today() Key { return FromTime(time.Now()) }

// Parse validates and canonicalizes s.
func Parse(s string) (Key, error) {
	t, err := time.ParseInLocation(readFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid day %q want format %q: %w", s, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return k
}

// Shift adds n calendar days to k.
func Shift(k Key, n int) Key {
	y, m, d := k.Date()
	return New(y, m, d+n)
}

// Date returns the year, month and day encoded in k. A malformed key yields
// the zero date.
func (k Key) Date() (year int, month time.Month, day int) {
	t, err := time.Parse(Format, string(k))
	if err != nil {
		return 1, time.January, 1
	}
	return t.Date()
}

// Valid reports whether k is canonical.
func (k Key) Valid() bool {
	t, err := time.Parse(Format, string(k))
	return err == nil && t.Format(Format) == string(k)
}

// Year returns the year of k.
func (k Key) Year() int { y, _, _ := k.Date(); return y }

// Month returns the month of k.
func (k Key) Month() time.Month { _, m, _ := k.Date(); return m }

// Day returns the day of the month of k.
func (k Key) Day() int { _, _, d := k.Date(); return d }

// Weekday returns the weekday of k, Sunday being 0.
func (k Key) Weekday() time.Weekday {
	y, m, d := k.Date()
	return noon(y, m, d).Weekday()
}

// Time returns local midnight at the start of k.
func (k Key) Time() time.Time {
	y, m, d := k.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Range returns the instants bounding k: its local midnight and the next one.
func (k Key) Range() (start, end time.Time) {
	return k.Time(), Shift(k, 1).Time()
}

// Before reports whether k is strictly before x.
func (k Key) Before(x Key) bool { return k < x }

// After reports whether k is strictly after x.
func (k Key) After(x Key) bool { return k > x }

func (k Key) String() string { return string(k) }

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return noon(year, month+1, 0).Day()
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	return noon(year, time.December, 31).YearDay()
}

// YearRange returns local midnight of January 1st of year and of the next year.
func YearRange(year int) (start, end time.Time) {
	return New(year, time.January, 1).Time(), New(year+1, time.January, 1).Time()
}

// noon anchors arithmetic at midday so that daylight-saving transitions,
// which happen around midnight, never move the date.
func noon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}
