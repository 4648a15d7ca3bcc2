package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"tableflip.dev/wins/pkg/journal"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	c, err := NewRedisCache("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, s
}

func TestGetMiss(t *testing.T) {
	c, _ := setupTestCache(t)
	records, ok, err := c.Get(context.Background(), 2024)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || records != nil {
		t.Fatalf("expected miss, got %v %v", ok, records)
	}
}

func TestPutAndGet(t *testing.T) {
	c, s := setupTestCache(t)
	ctx := context.Background()

	page := []journal.Record{
		{ID: 1, Day: "2024-01-01", Rating: 4, Wins: []journal.WinEntry{{ItemID: 2, Completed: true}}},
		{ID: 2, Day: "2024-01-02"},
	}
	if err := c.Put(ctx, 2024, page); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !s.Exists("wins:year:2024") {
		t.Fatalf("expected key wins:year:2024 to exist")
	}
	if ttl := s.TTL("wins:year:2024"); ttl != DefaultTTL {
		t.Fatalf("expected ttl %v, got %v", DefaultTTL, ttl)
	}

	got, ok, err := c.Get(ctx, 2024)
	if err != nil || !ok {
		t.Fatalf("Get failed: %v %v", ok, err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[0].Rating != 4 || !got[0].Completed(2) || got[1].Day != "2024-01-02" {
		t.Fatalf("unexpected page %+v", got)
	}
}

func TestPutEmptyPageIsAHit(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()
	if err := c.Put(ctx, 2023, nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok, err := c.Get(ctx, 2023)
	if err != nil || !ok || len(got) != 0 {
		t.Fatalf("expected empty hit, got %v %v %v", got, ok, err)
	}
}

func TestInvalidate(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()
	if err := c.Put(ctx, 2024, []journal.Record{{ID: 1, Day: "2024-05-05"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Invalidate(ctx, 2024); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, 2024); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestCorruptPage(t *testing.T) {
	c, s := setupTestCache(t)
	if err := s.Set("wins:year:2024", "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, _, err := c.Get(context.Background(), 2024)
	if !errors.Is(err, journal.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache("not-a-url://"); err == nil {
		t.Fatalf("expected error for bad url")
	}
}
