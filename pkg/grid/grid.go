// Package grid lays out per-day classifications as month rows and week columns.
package grid

import (
	"time"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

const (
	// DaysPerWeek is the column count of a week grid.
	DaysPerWeek = 7
	// YearPageLimit is the page size used to fetch one full year of records.
	YearPageLimit = 366
)

// Kind classifies a day.
type Kind int

const (
	// Missing days have no record.
	Missing Kind = iota
	// Unrated days have a record without a rating.
	Unrated
	// Rated days have a record with a rating in 1-5.
	Rated
)

func (k Kind) String() string {
	switch k {
	case Unrated:
		return "unrated"
	case Rated:
		return "rated"
	default:
		return "missing"
	}
}

// DayState is the derived classification of a day. Rating is only set for Rated days.
type DayState struct {
	Day    daykey.Key `json:"day"`
	Kind   Kind       `json:"kind"`
	Rating int        `json:"rating,omitempty"`
}

// Classify is the single rule both grids use.
func Classify(idx journal.Index, day daykey.Key) DayState {
	r, ok := idx.Lookup(day)
	switch {
	case !ok:
		return DayState{Day: day, Kind: Missing}
	case r.Rating >= 1 && r.Rating <= journal.MaxRating:
		return DayState{Day: day, Kind: Rated, Rating: r.Rating}
	default:
		return DayState{Day: day, Kind: Unrated}
	}
}

// Month returns one state per day of month, in day order.
func Month(year int, month time.Month, idx journal.Index) []DayState {
	n := daykey.DaysIn(year, month)
	out := make([]DayState, 0, n)
	for d := 1; d <= n; d++ {
		out = append(out, Classify(idx, daykey.New(year, month, d)))
	}
	return out
}

// Year returns the twelve month rows of year.
func Year(year int, idx journal.Index) [][]DayState {
	out := make([][]DayState, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Month(year, m, idx))
	}
	return out
}

// Week returns every day of year preceded by nil placeholders so that
// January 1st falls under its weekday column, Sunday first.
func Week(year int, idx journal.Index) []*DayState {
	first := daykey.New(year, time.January, 1)
	pad := int(first.Weekday())
	total := daykey.DaysInYear(year)
	out := make([]*DayState, pad, pad+total)
	for i := 0; i < total; i++ {
		st := Classify(idx, daykey.Shift(first, i))
		out = append(out, &st)
	}
	return out
}

// Weeks splits a week grid into rows of DaysPerWeek cells; the last row may be short.
func Weeks(cells []*DayState) [][]*DayState {
	var rows [][]*DayState
	for start := 0; start < len(cells); start += DaysPerWeek {
		end := start + DaysPerWeek
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	return rows
}
