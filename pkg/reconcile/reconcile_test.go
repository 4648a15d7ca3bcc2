package reconcile

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/wins/pkg/journal"
)

func TestReconcileFreshWinsAndAppends(t *testing.T) {
	cached := []journal.Record{{ID: 1, Rating: 3}}
	fresh := []journal.Record{{ID: 1, Rating: 5}, {ID: 2, Rating: 4}}

	got := Reconcile(cached, fresh)
	want := []journal.Record{{ID: 1, Rating: 5}, {ID: 2, Rating: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Reconcile mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileKeepsCachedOrder(t *testing.T) {
	cached := []journal.Record{{ID: 4, Day: "2024-01-04"}, {ID: 2, Day: "2024-01-02"}, {ID: 9, Day: "2024-01-09"}}
	fresh := []journal.Record{{ID: 7, Day: "2024-01-07"}, {ID: 2, Day: "2024-01-02", Rating: 1}, {ID: 5, Day: "2024-01-05"}}

	got := Reconcile(cached, fresh)
	var ids []int64
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]int64{4, 2, 9, 7, 5}, ids); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if got[1].Rating != 1 {
		t.Fatalf("expected fresh copy of id 2, got %+v", got[1])
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	if got := Reconcile(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	cached := []journal.Record{{ID: 1}}
	if got := Reconcile(cached, nil); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected cached record kept, got %v", got)
	}
}

func TestReconcileIdentityProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 100; trial++ {
		cached := randomRecords(rng, 1)
		fresh := randomRecords(rng, 2)
		got := Reconcile(cached, fresh)

		counts := map[int64]int{}
		for _, r := range got {
			counts[r.ID]++
		}
		freshIDs := map[int64]journal.Record{}
		for _, r := range fresh {
			if _, ok := freshIDs[r.ID]; !ok {
				freshIDs[r.ID] = r
			}
		}
		for id := range freshIDs {
			if counts[id] != 1 {
				t.Fatalf("trial %d: fresh id %d appears %d times", trial, id, counts[id])
			}
		}
		for _, r := range cached {
			if counts[r.ID] != 1 {
				t.Fatalf("trial %d: cached id %d appears %d times", trial, r.ID, counts[r.ID])
			}
		}
		for _, r := range got {
			if f, ok := freshIDs[r.ID]; ok && r.Rating != f.Rating {
				t.Fatalf("trial %d: id %d kept stale rating", trial, r.ID)
			}
		}
	}
}

func TestApplySaved(t *testing.T) {
	current := []journal.Record{{ID: 7, Rating: 4, Text: "old"}, {ID: 9, Rating: 1}}
	saved := journal.Record{ID: 7, Rating: 2, Text: "new"}

	got := ApplySaved(current, saved)
	want := []journal.Record{{ID: 7, Rating: 2, Text: "new"}, {ID: 9, Rating: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ApplySaved mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySavedNewRecord(t *testing.T) {
	got := ApplySaved([]journal.Record{{ID: 1}}, journal.Record{ID: 2})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestApplySavedNeverDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		current := randomRecords(rng, 0)
		current = append(current, current...)
		saved := journal.Record{ID: int64(rng.Intn(12) + 1), Rating: 5}
		got := ApplySaved(current, saved)
		seen := map[int64]bool{}
		for _, r := range got {
			if seen[r.ID] {
				t.Fatalf("trial %d: duplicate id %d", trial, r.ID)
			}
			seen[r.ID] = true
		}
		if got[0].ID != saved.ID || got[0].Rating != 5 {
			t.Fatalf("trial %d: saved record not first", trial)
		}
	}
}

func randomRecords(rng *rand.Rand, rating int) []journal.Record {
	n := rng.Intn(8)
	seen := map[int64]bool{}
	var out []journal.Record
	for i := 0; i < n; i++ {
		id := int64(rng.Intn(12) + 1)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, journal.Record{ID: id, Rating: rating})
	}
	return out
}
