package app

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"tableflip.dev/wins/pkg/cache"
	"tableflip.dev/wins/pkg/grid"
	"tableflip.dev/wins/pkg/journal"
)

func TestProgressBuildsYear(t *testing.T) {
	mp := newMemoryPersistence(
		journal.Record{Day: "2024-02-29", Rating: 5},
		journal.Record{Day: "2024-03-01"},
		journal.Record{Day: "2023-12-31", Rating: 1},
	)
	svc := &Service{Persistence: mp}
	view, err := svc.Progress(context.Background(), 2024)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(view.Months) != 12 || len(view.Months[1]) != 29 {
		t.Fatalf("unexpected month shape")
	}
	if st := view.Months[1][28]; st.Kind != grid.Rated || st.Rating != 5 {
		t.Fatalf("unexpected Feb 29 state %+v", st)
	}
	if st := view.Months[2][0]; st.Kind != grid.Unrated {
		t.Fatalf("unexpected Mar 1 state %+v", st)
	}
	if view.Summary.Days != 366 || view.Summary.Rated != 1 || view.Summary.Unrated != 1 {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}
	if len(view.Records) != 2 {
		t.Fatalf("expected only 2024 records, got %+v", view.Records)
	}
	// 2024-01-01 is a Monday.
	if view.Weeks[0][0] != nil || view.Weeks[0][1] == nil || view.Weeks[0][1].Day != "2024-01-01" {
		t.Fatalf("unexpected first week %+v", view.Weeks[0])
	}
}

func TestYearBrowserKeepsStateOnFailure(t *testing.T) {
	mp := newMemoryPersistence(journal.Record{Day: "2024-05-05", Rating: 4})
	svc := &Service{Persistence: mp}
	b := svc.Years()
	ctx := context.Background()

	if _, err := b.Load(ctx, 2024); err != nil {
		t.Fatalf("load: %v", err)
	}
	mp.failRange = journal.ErrTransport
	view, err := b.Load(ctx, 2024)
	if !errors.Is(err, journal.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if b.Status() != StatusError {
		t.Fatalf("expected error status, got %s", b.Status())
	}
	if len(view.Records) != 1 || view.Summary.Rated != 1 {
		t.Fatalf("previous records must survive a failed fetch, got %+v", view.Records)
	}
}

func TestYearBrowserMergesAcrossYears(t *testing.T) {
	mp := newMemoryPersistence(
		journal.Record{Day: "2023-06-01", Rating: 2},
		journal.Record{Day: "2024-06-01", Rating: 3},
	)
	svc := &Service{Persistence: mp}
	b := svc.Years()
	ctx := context.Background()
	if _, err := b.Load(ctx, 2024); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := b.Load(ctx, 2023); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := b.Load(ctx, 2024); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := b.Records(); len(got) != 2 {
		t.Fatalf("expected both years held once, got %+v", got)
	}

	b.ApplySaved(journal.Record{ID: 2, Day: "2024-06-01", Rating: 5})
	if st := b.View(2024).Months[5][0]; st.Rating != 5 {
		t.Fatalf("expected saved rating to show, got %+v", st)
	}
}

func TestYearBrowserStaleDelivery(t *testing.T) {
	b := (&Service{}).Years()
	old := b.Request()
	cur := b.Request()
	if b.Deliver(old, []journal.Record{{ID: 1, Day: "2024-01-01"}}, nil) {
		t.Fatal("superseded page must be dropped")
	}
	if !b.Deliver(cur, nil, nil) || len(b.Records()) != 0 {
		t.Fatalf("unexpected held records %+v", b.Records())
	}
}

func TestProgressUsesCache(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := cache.NewRedisCache("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	mp := newMemoryPersistence(journal.Record{Day: "2024-01-02", Rating: 4})
	svc := &Service{Persistence: mp, Cache: c}
	if _, err := svc.Progress(ctx, 2024); err != nil {
		t.Fatalf("progress: %v", err)
	}
	page, ok, err := c.Get(ctx, 2024)
	if err != nil || !ok || len(page) != 1 {
		t.Fatalf("expected fetched page to be cached, got %v %v %v", page, ok, err)
	}

	// With the store down, a new browser still renders the cached page.
	mp.failRange = journal.ErrTransport
	view, err := svc.Progress(ctx, 2024)
	if !errors.Is(err, journal.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if view.Summary.Rated != 1 {
		t.Fatalf("expected cached page in view, got %+v", view.Summary)
	}

	svc.Forget(ctx, 2024)
	if _, ok, _ := c.Get(ctx, 2024); ok {
		t.Fatal("expected cache entry to be dropped")
	}
}

func TestEditorSaveInvalidatesCachedYear(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := cache.NewRedisCache("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	mp := newMemoryPersistence(journal.Record{Day: "2024-01-02", Rating: 4})
	svc := &Service{Persistence: mp, Cache: c}
	if _, err := svc.Progress(ctx, 2024); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if _, ok, _ := c.Get(ctx, 2024); !ok {
		t.Fatal("expected year page cached")
	}

	e, err := svc.Editor(ctx, "2024-03-05")
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	_ = e.SetRating(3)
	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, _ := c.Get(ctx, 2024); ok {
		t.Fatal("expected the saved year to be dropped from the cache")
	}
}
