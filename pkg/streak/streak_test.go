package streak

import (
	"math/rand"
	"testing"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

const exercise int64 = 1

func marchIndex() journal.Index {
	done := func(ok bool) []journal.WinEntry {
		return []journal.WinEntry{{ItemID: exercise, Completed: ok}}
	}
	return journal.BuildIndex([]journal.Record{
		{ID: 5, Day: "2024-03-05", Wins: done(true)},
		{ID: 4, Day: "2024-03-04", Wins: done(true)},
		{ID: 3, Day: "2024-03-03", Wins: done(false)},
		{ID: 2, Day: "2024-03-02", Wins: done(true)},
		{ID: 1, Day: "2024-03-01", Wins: done(true)},
	})
}

func TestOverallContiguous(t *testing.T) {
	c := New(DefaultLookback)
	if got := c.Overall(marchIndex(), "2024-03-05"); got != 5 {
		t.Fatalf("expected streak 5, got %d", got)
	}
}

func TestOverallReferenceAfterLastRecord(t *testing.T) {
	c := New(DefaultLookback)
	if got := c.Overall(marchIndex(), "2024-03-07"); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestItemStreakStopsAtIncomplete(t *testing.T) {
	c := New(DefaultLookback)
	idx := marchIndex()
	if got := c.Item(idx, exercise, "2024-03-05"); got != 2 {
		t.Fatalf("expected item streak 2, got %d", got)
	}
	if got := c.Overall(idx, "2024-03-05"); got != 5 {
		t.Fatalf("expected overall streak 5, got %d", got)
	}
	if got := c.Item(idx, 99, "2024-03-05"); got != 0 {
		t.Fatalf("unknown item should have no streak, got %d", got)
	}
}

func TestLookbackCaps(t *testing.T) {
	var records []journal.Record
	day := daykey.Key("2024-06-30")
	for i := 0; i < 100; i++ {
		records = append(records, journal.Record{ID: int64(i + 1), Day: daykey.Shift(day, -i)})
	}
	idx := journal.BuildIndex(records)
	if got := New(60).Overall(idx, day); got != 60 {
		t.Fatalf("expected capped streak 60, got %d", got)
	}
	if got := New(0).Lookback; got != DefaultLookback {
		t.Fatalf("expected default lookback, got %d", got)
	}
}

func TestItems(t *testing.T) {
	items := []journal.Item{{ID: exercise, Name: "Exercise"}, {ID: 2, Name: "Read"}}
	got := New(DefaultLookback).Items(marchIndex(), items, "2024-03-05")
	if got[exercise] != 2 || got[2] != 0 || len(got) != 2 {
		t.Fatalf("unexpected item streaks: %v", got)
	}
}

func TestStreakProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ref := daykey.Key("2024-04-15")
	for trial := 0; trial < 50; trial++ {
		var records []journal.Record
		for i := 0; i < 90; i++ {
			if rng.Intn(10) == 0 {
				continue
			}
			records = append(records, journal.Record{
				ID:   int64(i + 1),
				Day:  daykey.Shift(ref, -i),
				Wins: []journal.WinEntry{{ItemID: exercise, Completed: rng.Intn(4) != 0}},
			})
		}
		idx := journal.BuildIndex(records)

		if !idx.Has(ref) && New(60).Overall(idx, ref) != 0 {
			t.Fatalf("trial %d: absent reference must yield 0", trial)
		}
		prev := 0
		for w := 1; w <= 100; w++ {
			c := Calculator{Lookback: w}
			overall := c.Overall(idx, ref)
			if overall < prev {
				t.Fatalf("trial %d: overall decreased from %d to %d at window %d", trial, prev, overall, w)
			}
			if overall > w {
				t.Fatalf("trial %d: overall %d exceeds window %d", trial, overall, w)
			}
			if item := c.Item(idx, exercise, ref); item > overall {
				t.Fatalf("trial %d: item streak %d exceeds overall %d", trial, item, overall)
			}
			prev = overall
		}
	}
}
