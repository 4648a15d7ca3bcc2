package app

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/wins/pkg/journal"
)

func TestReportWindow(t *testing.T) {
	mp := newMemoryPersistence()
	items := mp.addItems("Exercise", "Read", "Stretch")
	ex, st := items[0].ID, items[2].ID
	ctx := context.Background()
	for _, r := range []journal.Record{
		{Day: "2024-02-25", Rating: 5, Wins: []journal.WinEntry{{ItemID: ex, Completed: true}}},
		{Day: "2024-03-01", Rating: 4, Wins: []journal.WinEntry{{ItemID: ex, Completed: true}, {ItemID: st, Completed: true}}},
		{Day: "2024-03-03", Wins: []journal.WinEntry{{ItemID: ex, Completed: true}}},
		{Day: "2024-03-04", Rating: 1},
	} {
		if _, err := mp.SaveJournal(ctx, r, false); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := (&Service{Persistence: mp}).SetItemActive(ctx, "Stretch", false); err != nil {
		t.Fatalf("retire: %v", err)
	}
	if _, err := (&Service{Persistence: mp}).SetItemActive(ctx, "Read", false); err != nil {
		t.Fatalf("retire: %v", err)
	}

	svc := &Service{Persistence: mp}
	got, err := svc.Report(ctx, "2024-03-05", 7)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got.Since != "2024-02-28" || got.Until != "2024-03-05" {
		t.Fatalf("unexpected bounds %s..%s", got.Since, got.Until)
	}
	if got.Summary.Days != 7 || got.Summary.Rated != 2 || got.Summary.Unrated != 1 || got.Summary.Mean.String() != "2.5" {
		t.Fatalf("unexpected summary %+v", got.Summary)
	}
	if got.Total != 3 {
		t.Fatalf("expected 3 completions, got %d", got.Total)
	}
	if len(got.Items) != 2 || got.Items[0].Item.ID != ex || got.Items[1].Item.ID != st {
		t.Fatalf("expected Exercise and retired Stretch only, got %+v", got.Items)
	}
	if got.Items[0].Completed != 2 || got.Items[0].Rate.String() != "28.6" {
		t.Fatalf("unexpected exercise line %+v", got.Items[0])
	}

	if _, err := svc.Report(ctx, "2024-03-05", 0); !errors.Is(err, journal.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
