// Package streak counts consecutive logged days ending at a reference day.
package streak

import (
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

// DefaultLookback bounds how many days a walk examines.
const DefaultLookback = 60

// Calculator walks an index backwards from a reference day. Streaks longer
// than Lookback report Lookback.
type Calculator struct {
	Lookback int
}

// New returns a Calculator, substituting DefaultLookback for non-positive values.
func New(lookback int) Calculator {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return Calculator{Lookback: lookback}
}

// Overall counts consecutive days with a record, starting at ref.
func (c Calculator) Overall(idx journal.Index, ref daykey.Key) int {
	return c.walk(ref, func(day daykey.Key) bool {
		return idx.Has(day)
	})
}

// Item counts consecutive days, starting at ref, whose record completes item.
func (c Calculator) Item(idx journal.Index, item int64, ref daykey.Key) int {
	return c.walk(ref, func(day daykey.Key) bool {
		r, ok := idx.Lookup(day)
		return ok && r.Completed(item)
	})
}

// Items returns the streak of every item keyed by item ID.
func (c Calculator) Items(idx journal.Index, items []journal.Item, ref daykey.Key) map[int64]int {
	out := make(map[int64]int, len(items))
	for _, it := range items {
		out[it.ID] = c.Item(idx, it.ID, ref)
	}
	return out
}

func (c Calculator) walk(ref daykey.Key, qualifies func(daykey.Key) bool) int {
	count := 0
	day := ref
	for examined := 0; examined < c.Lookback; examined++ {
		if !qualifies(day) {
			break
		}
		count++
		day = daykey.Shift(day, -1)
	}
	return count
}
