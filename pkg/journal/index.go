package journal

import (
	"strings"

	"tableflip.dev/wins/pkg/daykey"
)

// Index maps a day to the record logged for it.
type Index struct {
	byDay map[daykey.Key]Record
}

// BuildIndex indexes records by day. When several records share a day the
// first one wins, so callers that care about recency pass newest first.
func BuildIndex(records []Record) Index {
	idx := Index{byDay: make(map[daykey.Key]Record, len(records))}
	for _, r := range records {
		if r.Day == "" {
			continue
		}
		if _, ok := idx.byDay[r.Day]; ok {
			continue
		}
		idx.byDay[r.Day] = r
	}
	return idx
}

// Lookup returns the record for day, if any.
func (i Index) Lookup(day daykey.Key) (Record, bool) {
	r, ok := i.byDay[day]
	return r, ok
}

// Has reports whether day has a record.
func (i Index) Has(day daykey.Key) bool {
	_, ok := i.byDay[day]
	return ok
}

// Len returns the number of indexed days.
func (i Index) Len() int { return len(i.byDay) }

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
