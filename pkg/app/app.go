package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/wins/pkg/cache"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
	"tableflip.dev/wins/pkg/store"
	"tableflip.dev/wins/pkg/streak"
)

// Service provides high-level operations over journals and tracked items.
// It wraps persistence and the pure engine packages so CLIs and the MCP
// server share one code path.
type Service struct {
	Persistence store.Persistence
	Streaks     streak.Calculator
	// Cache is optional. When set, year pages are served from it while the
	// store is queried.
	Cache cache.YearCache
}

var errNoPersistence = errors.New("app: no persistence configured")

// ItemStatus is one tracked item as seen on a given day.
type ItemStatus struct {
	Item      journal.Item `json:"item"`
	Completed bool         `json:"completed"`
	Note      string       `json:"note,omitempty"`
	Streak    int          `json:"streak"`
}

// TodayView is everything needed to render one day.
type TodayView struct {
	Day     daykey.Key      `json:"day"`
	Record  *journal.Record `json:"record,omitempty"`
	Items   []ItemStatus    `json:"items"`
	Overall int             `json:"overall"`
}

func (s *Service) calculator() streak.Calculator {
	return streak.New(s.Streaks.Lookback)
}

// Recent returns the records of the lookback window ending at ref, newest first.
func (s *Service) Recent(ctx context.Context, ref daykey.Key) ([]journal.Record, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	lookback := s.calculator().Lookback
	start := daykey.Shift(ref, -(lookback - 1)).Time()
	_, end := ref.Range()
	// Duplicate copies of a day can crowd the limit; fetch generously.
	records, err := s.Persistence.JournalsInRange(ctx, start, end, store.Descending, 2*lookback)
	if err != nil {
		return nil, fmt.Errorf("app: recent journals: %w", err)
	}
	return records, nil
}

// Items lists tracked items in display order.
func (s *Service) Items(ctx context.Context, activeOnly bool) ([]journal.Item, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	items, err := s.Persistence.Items(ctx, activeOnly, store.Ascending)
	if err != nil {
		return nil, fmt.Errorf("app: items: %w", err)
	}
	return items, nil
}

// AddItem creates a tracked item, appending it after the current items when
// no order is given.
func (s *Service) AddItem(ctx context.Context, name, description string, order int) (journal.Item, error) {
	if s.Persistence == nil {
		return journal.Item{}, errNoPersistence
	}
	if _, err := s.findItem(ctx, name); err == nil {
		return journal.Item{}, fmt.Errorf("app: %w: item %q already exists", journal.ErrValidation, name)
	}
	if order == 0 {
		items, err := s.Items(ctx, false)
		if err != nil {
			return journal.Item{}, err
		}
		for _, it := range items {
			if it.Order >= order {
				order = it.Order + 1
			}
		}
	}
	it, err := s.Persistence.SaveItem(ctx, journal.Item{Name: name, Description: description, Active: true, Order: order})
	if err != nil {
		return journal.Item{}, fmt.Errorf("app: add item: %w", err)
	}
	return it, nil
}

// SetItemActive flips the active flag of the named item.
func (s *Service) SetItemActive(ctx context.Context, name string, active bool) (journal.Item, error) {
	it, err := s.findItem(ctx, name)
	if err != nil {
		return journal.Item{}, err
	}
	it.Active = active
	if it, err = s.Persistence.SaveItem(ctx, it); err != nil {
		return journal.Item{}, fmt.Errorf("app: update item: %w", err)
	}
	return it, nil
}

func (s *Service) findItem(ctx context.Context, name string) (journal.Item, error) {
	items, err := s.Items(ctx, false)
	if err != nil {
		return journal.Item{}, err
	}
	it, ok := journal.FindItem(items, name)
	if !ok {
		return journal.Item{}, fmt.Errorf("app: %w: unknown item %q", journal.ErrValidation, name)
	}
	return it, nil
}

// Today builds the view of day: its record, active items with completion
// and streaks, and the overall streak.
func (s *Service) Today(ctx context.Context, day daykey.Key) (TodayView, error) {
	if !day.Valid() {
		return TodayView{}, fmt.Errorf("app: %w: bad day %q", journal.ErrValidation, day)
	}
	items, err := s.Items(ctx, true)
	if err != nil {
		return TodayView{}, err
	}
	recent, err := s.Recent(ctx, day)
	if err != nil {
		return TodayView{}, err
	}
	return s.todayView(day, items, journal.BuildIndex(recent)), nil
}

func (s *Service) todayView(day daykey.Key, items []journal.Item, idx journal.Index) TodayView {
	calc := s.calculator()
	view := TodayView{
		Day:     day,
		Items:   make([]ItemStatus, 0, len(items)),
		Overall: calc.Overall(idx, day),
	}
	rec, ok := idx.Lookup(day)
	if ok {
		view.Record = &rec
	}
	streaks := calc.Items(idx, items, day)
	for _, it := range items {
		st := ItemStatus{Item: it, Streak: streaks[it.ID]}
		if ok {
			for _, w := range rec.Wins {
				if w.ItemID == it.ID {
					st.Completed = w.Completed
					st.Note = w.Note
					break
				}
			}
		}
		view.Items = append(view.Items, st)
	}
	return view
}

// Day fetches the record stored for day, or nil.
func (s *Service) Day(ctx context.Context, day daykey.Key) (*journal.Record, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	r, err := s.Persistence.JournalByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("app: journal %s: %w", day, err)
	}
	return r, nil
}

// Progress loads the calendar view of year.
func (s *Service) Progress(ctx context.Context, year int) (YearView, error) {
	return s.Years().Load(ctx, year)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Forget drops any cached page for year so the next load reads the store.
func (s *Service) Forget(ctx context.Context, year int) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, year); err != nil {
		fmt.Fprintf(os.Stderr, "app: %v\n", err)
	}
}

// Close releases the persistence and cache.
func (s *Service) Close() error {
	var errs []error
	if s.Cache != nil {
		errs = append(errs, s.Cache.Close())
	}
	if s.Persistence != nil {
		errs = append(errs, s.Persistence.Close())
	}
	return errors.Join(errs...)
}
