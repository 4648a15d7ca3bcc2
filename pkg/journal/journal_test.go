package journal

import (
	"errors"
	"testing"
)

func TestBuildIndexFirstWins(t *testing.T) {
	idx := BuildIndex([]Record{
		{ID: 3, Day: "2024-03-02", Rating: 4},
		{ID: 1, Day: "2024-03-01", Rating: 2},
		{ID: 2, Day: "2024-03-02", Rating: 1},
		{ID: 9},
	})
	if idx.Len() != 2 {
		t.Fatalf("expected 2 indexed days, got %d", idx.Len())
	}
	r, ok := idx.Lookup("2024-03-02")
	if !ok {
		t.Fatalf("expected record for 2024-03-02")
	}
	if r.ID != 3 {
		t.Fatalf("expected first record (id 3) to win, got %d", r.ID)
	}
	if _, ok := idx.Lookup("2024-03-03"); ok {
		t.Fatalf("expected no record for 2024-03-03")
	}
}

func TestZeroIndexLookup(t *testing.T) {
	var idx Index
	if idx.Has("2024-01-01") || idx.Len() != 0 {
		t.Fatalf("zero index should be empty")
	}
}

func TestRecordCompleted(t *testing.T) {
	r := Record{Wins: []WinEntry{
		{ItemID: 1, Completed: false, Note: "skipped"},
		{ItemID: 2, Completed: true},
		{ItemID: 2, Completed: true},
	}}
	if r.Completed(1) {
		t.Fatalf("item 1 is not completed")
	}
	if !r.Completed(2) {
		t.Fatalf("item 2 is completed")
	}
	if r.CompletedCount() != 1 {
		t.Fatalf("expected 1 distinct completed item, got %d", r.CompletedCount())
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		ok   bool
	}{
		{"unrated", Record{Day: "2024-03-01"}, true},
		{"rated", Record{Day: "2024-03-01", Rating: 5}, true},
		{"too high", Record{Day: "2024-03-01", Rating: 6}, false},
		{"negative", Record{Day: "2024-03-01", Rating: -1}, false},
		{"bad day", Record{Day: "2024-3-1"}, false},
		{"no day", Record{}, false},
	}
	for _, tt := range tests {
		err := tt.r.Validate()
		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected validation failure, got %v", tt.name, err)
		}
	}
}

func TestCloneDetachesWins(t *testing.T) {
	r := Record{Wins: []WinEntry{{ItemID: 1, Completed: true}}}
	c := r.Clone()
	c.Wins[0].Completed = false
	if !r.Wins[0].Completed {
		t.Fatalf("clone shares wins with the original")
	}
}

func TestItemsHelpers(t *testing.T) {
	items := []Item{
		{ID: 3, Name: "Read", Active: true, Order: 2},
		{ID: 1, Name: "Exercise", Active: true, Order: 1},
		{ID: 2, Name: "Old", Active: false, Order: 0},
	}
	SortItems(items)
	if items[0].ID != 2 || items[1].ID != 1 || items[2].ID != 3 {
		t.Fatalf("unexpected order: %+v", items)
	}
	active := ActiveItems(items)
	if len(active) != 2 || active[0].ID != 1 {
		t.Fatalf("unexpected active items: %+v", active)
	}
	if it, ok := FindItem(items, " exercise "); !ok || it.ID != 1 {
		t.Fatalf("expected to find exercise, got %+v %v", it, ok)
	}
}
