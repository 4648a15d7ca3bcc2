// Package store persists journal records and tracked items.
package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

// SortOrder orders fetched records by day, or items by display rank.
type SortOrder int

const (
	// Ascending sorts oldest day (or lowest rank) first.
	Ascending SortOrder = iota
	// Descending sorts newest day (or highest rank) first.
	Descending
)

// Persistence is the contract between the journal engine and its storage.
// Absent data is reported as a nil or empty result; a returned error means
// the call itself failed.
type Persistence interface {
	JournalByDay(ctx context.Context, day daykey.Key) (*journal.Record, error)
	JournalsInRange(ctx context.Context, start, end time.Time, order SortOrder, limit int) ([]journal.Record, error)
	Items(ctx context.Context, activeOnly bool, order SortOrder) ([]journal.Item, error)
	SaveJournal(ctx context.Context, r journal.Record, update bool) (journal.Record, error)
	SaveItem(ctx context.Context, it journal.Item) (journal.Item, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Load opens the Persistence selected by cfg. A nil cfg loads the default config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Backend() {
	case BackendSQLite:
		s, err := OpenSQLite(cfg.BasePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendDiskv, "":
		return OpenDiskv(cfg.BasePath()), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

// inRange reports whether day starts within [start, end).
func inRange(day daykey.Key, start, end time.Time) bool {
	t := day.Time()
	return !t.Before(start) && t.Before(end)
}

// sortRecords orders by day, newest ID first within a day so that the
// first-wins index picks the most recent copy.
func sortRecords(records []journal.Record, order SortOrder) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Day != b.Day {
			if order == Descending {
				return a.Day > b.Day
			}
			return a.Day < b.Day
		}
		return a.ID > b.ID
	})
}

func limitRecords(records []journal.Record, limit int) []journal.Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

func sortItems(items []journal.Item, order SortOrder) {
	journal.SortItems(items)
	if order == Descending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
}

func validateSave(r journal.Record, update bool) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if update && r.ID == 0 {
		return fmt.Errorf("%w: update requires a record id", journal.ErrValidation)
	}
	return nil
}
