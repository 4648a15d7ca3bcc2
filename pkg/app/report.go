package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/grid"
	"tableflip.dev/wins/pkg/journal"
	"tableflip.dev/wins/pkg/store"
)

// ReportItem captures how often an item was completed in a window.
type ReportItem struct {
	Item      journal.Item    `json:"item" yaml:"item"`
	Completed int             `json:"completed" yaml:"completed"`
	Rate      decimal.Decimal `json:"rate" yaml:"rate"`
}

// ReportResult summarizes the days between Since and Until, both inclusive.
type ReportResult struct {
	Since   daykey.Key   `json:"since" yaml:"since"`
	Until   daykey.Key   `json:"until" yaml:"until"`
	Summary grid.Summary `json:"summary" yaml:"summary"`
	Items   []ReportItem `json:"items" yaml:"items"`
	Total   int          `json:"total" yaml:"total"`
}

// Report aggregates the window of days ending at until. Retired items only
// appear when they were completed inside the window.
func (s *Service) Report(ctx context.Context, until daykey.Key, days int) (ReportResult, error) {
	if s.Persistence == nil {
		return ReportResult{}, errNoPersistence
	}
	if days <= 0 {
		return ReportResult{}, fmt.Errorf("app: report window must be positive, got %d: %w", days, journal.ErrValidation)
	}
	since := daykey.Shift(until, -(days - 1))
	_, end := until.Range()
	records, err := s.Persistence.JournalsInRange(ctx, since.Time(), end, store.Ascending, 2*days)
	if err != nil {
		return ReportResult{}, fmt.Errorf("app: report journals: %w", err)
	}
	items, err := s.Items(ctx, false)
	if err != nil {
		return ReportResult{}, err
	}

	idx := journal.BuildIndex(records)
	states := make([]grid.DayState, 0, days)
	counts := make(map[int64]int)
	total := 0
	for day := since; !day.After(until); day = daykey.Shift(day, 1) {
		states = append(states, grid.Classify(idx, day))
		r, ok := idx.Lookup(day)
		if !ok {
			continue
		}
		for _, w := range r.Wins {
			if w.Completed {
				counts[w.ItemID]++
				total++
			}
		}
	}

	result := ReportResult{
		Since:   since,
		Until:   until,
		Summary: grid.Summarize(states),
		Total:   total,
	}
	for _, it := range items {
		n := counts[it.ID]
		if !it.Active && n == 0 {
			continue
		}
		result.Items = append(result.Items, ReportItem{
			Item:      it,
			Completed: n,
			Rate: decimal.NewFromInt(int64(n * 100)).
				DivRound(decimal.NewFromInt(int64(days)), 1),
		})
	}
	return result, nil
}
