package grid

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

func sampleIndex() journal.Index {
	return journal.BuildIndex([]journal.Record{
		{ID: 1, Day: "2024-02-01", Rating: 3},
		{ID: 2, Day: "2024-02-02"},
		{ID: 3, Day: "2024-02-29", Rating: 5},
		{ID: 4, Day: "2024-01-01", Rating: 1},
	})
}

func TestClassify(t *testing.T) {
	idx := sampleIndex()
	tests := []struct {
		day  daykey.Key
		want DayState
	}{
		{"2024-02-01", DayState{Day: "2024-02-01", Kind: Rated, Rating: 3}},
		{"2024-02-02", DayState{Day: "2024-02-02", Kind: Unrated}},
		{"2024-02-03", DayState{Day: "2024-02-03", Kind: Missing}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Classify(idx, tt.day)); diff != "" {
			t.Fatalf("Classify(%s) mismatch (-want +got):\n%s", tt.day, diff)
		}
	}
}

func TestMonthLeapFebruary(t *testing.T) {
	days := Month(2024, time.February, sampleIndex())
	if len(days) != 29 {
		t.Fatalf("expected 29 days, got %d", len(days))
	}
	for i, d := range days {
		if d.Day.Day() != i+1 {
			t.Fatalf("day %d out of order: %s", i, d.Day)
		}
	}
	if days[28].Kind != Rated || days[28].Rating != 5 {
		t.Fatalf("expected Feb 29 rated 5, got %+v", days[28])
	}
	if n := len(Month(2023, time.February, sampleIndex())); n != 28 {
		t.Fatalf("expected 28 days in Feb 2023, got %d", n)
	}
}

func TestWeekPadding(t *testing.T) {
	// 2024-01-01 is a Monday.
	cells := Week(2024, sampleIndex())
	if len(cells) != 1+366 {
		t.Fatalf("expected 367 cells, got %d", len(cells))
	}
	if cells[0] != nil {
		t.Fatalf("expected one placeholder, got %+v", cells[0])
	}
	if cells[1] == nil || cells[1].Day != "2024-01-01" || cells[1].Kind != Rated {
		t.Fatalf("unexpected first day cell %+v", cells[1])
	}
	if last := cells[len(cells)-1]; last.Day != "2024-12-31" {
		t.Fatalf("unexpected last day %s", last.Day)
	}

	// 2023-01-01 is a Sunday.
	cells = Week(2023, journal.Index{})
	if cells[0] == nil || len(cells) != 365 {
		t.Fatalf("expected no placeholders for 2023, got %d cells", len(cells))
	}

	// 2022-01-01 is a Saturday.
	cells = Week(2022, journal.Index{})
	for i := 0; i < 6; i++ {
		if cells[i] != nil {
			t.Fatalf("expected placeholder at %d", i)
		}
	}
	rows := Weeks(cells)
	if rows[0][6] == nil || rows[0][6].Day != "2022-01-01" {
		t.Fatalf("Jan 1 2022 should be in the Saturday column")
	}
}

func TestYearAndSummary(t *testing.T) {
	months := Year(2024, sampleIndex())
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	s := Summarize(Flatten(months))
	if s.Days != 366 || s.Rated != 3 || s.Unrated != 1 || s.Missing != 362 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Logged() != 4 {
		t.Fatalf("expected 4 logged days, got %d", s.Logged())
	}
	if got := s.Mean.String(); got != "3" {
		t.Fatalf("expected mean 3, got %s", got)
	}
	if s.ByScore[5] != 1 || s.ByScore[1] != 1 || s.ByScore[3] != 1 {
		t.Fatalf("unexpected score histogram %v", s.ByScore)
	}
}

func TestSummaryMeanRounds(t *testing.T) {
	s := Summarize([]DayState{
		{Kind: Rated, Rating: 1},
		{Kind: Rated, Rating: 2},
		{Kind: Rated, Rating: 2},
	})
	if got := s.Mean.StringFixed(2); got != "1.67" {
		t.Fatalf("expected 1.67, got %s", got)
	}
	if empty := Summarize(nil); !empty.Mean.IsZero() {
		t.Fatalf("expected zero mean for no ratings")
	}
}
