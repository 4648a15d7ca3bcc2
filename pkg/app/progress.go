package app

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/grid"
	"tableflip.dev/wins/pkg/journal"
	"tableflip.dev/wins/pkg/reconcile"
	"tableflip.dev/wins/pkg/store"
)

// YearView is the calendar of one year.
type YearView struct {
	Year    int                `json:"year" yaml:"year"`
	Months  [][]grid.DayState  `json:"months" yaml:"months"`
	Weeks   [][]*grid.DayState `json:"-" yaml:"-"`
	Summary grid.Summary       `json:"summary" yaml:"summary"`
	Records []journal.Record   `json:"records,omitempty" yaml:"records,omitempty"`
}

// YearBrowser holds the records seen while moving between years. Pages are
// merged into the held set, never replacing it, so a failed fetch leaves the
// last good view in place. It is owned by a single caller.
type YearBrowser struct {
	svc     *Service
	records []journal.Record
	status  Status
	err     error
	gen     Ticket
}

// Years returns an empty browser.
func (s *Service) Years() *YearBrowser {
	return &YearBrowser{svc: s}
}

func (b *YearBrowser) Status() Status { return b.status }
func (b *YearBrowser) Err() error     { return b.err }

// Records returns a copy of the held set.
func (b *YearBrowser) Records() []journal.Record {
	return append([]journal.Record(nil), b.records...)
}

// Request starts a load and returns its ticket.
func (b *YearBrowser) Request() Ticket {
	b.gen++
	b.status = StatusLoading
	b.err = nil
	return b.gen
}

// Deliver folds a fetched page into the held set. Pages for superseded
// tickets are dropped and Deliver reports false.
func (b *YearBrowser) Deliver(t Ticket, page []journal.Record, err error) bool {
	if t != b.gen {
		return false
	}
	if err != nil {
		b.status = StatusError
		b.err = err
		return true
	}
	b.records = reconcile.Reconcile(b.records, page)
	b.status = StatusIdle
	return true
}

// Load shows the cached page for year, if any, then merges the store's page.
func (b *YearBrowser) Load(ctx context.Context, year int) (YearView, error) {
	if b.svc.Persistence == nil {
		return YearView{}, errNoPersistence
	}
	if b.svc.Cache != nil {
		cached, ok, err := b.svc.Cache.Get(ctx, year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "app: %v\n", err)
		} else if ok {
			b.records = reconcile.Reconcile(b.records, cached)
		}
	}

	t := b.Request()
	start, end := daykey.YearRange(year)
	page, err := b.svc.Persistence.JournalsInRange(ctx, start, end, store.Ascending, grid.YearPageLimit)
	if !b.Deliver(t, page, err) {
		return b.View(year), nil
	}
	if err != nil {
		return b.View(year), fmt.Errorf("app: journals %d: %w", year, err)
	}
	if b.svc.Cache != nil {
		if err := b.svc.Cache.Put(ctx, year, page); err != nil {
			fmt.Fprintf(os.Stderr, "app: %v\n", err)
		}
	}
	return b.View(year), nil
}

// ApplySaved puts a just-saved record at the front of the held set.
func (b *YearBrowser) ApplySaved(saved journal.Record) {
	b.records = reconcile.ApplySaved(b.records, saved)
}

// View renders year from the held set.
func (b *YearBrowser) View(year int) YearView {
	idx := journal.BuildIndex(b.records)
	months := grid.Year(year, idx)
	view := YearView{
		Year:    year,
		Months:  months,
		Weeks:   grid.Weeks(grid.Week(year, idx)),
		Summary: grid.Summarize(grid.Flatten(months)),
	}
	for _, r := range b.records {
		if r.Day.Year() == year {
			view.Records = append(view.Records, r)
		}
	}
	return view
}
