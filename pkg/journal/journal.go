// Package journal holds the daily journal data model and the day index.
package journal

import (
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/wins/pkg/daykey"
)

// MaxRating is the highest mood rating a record can carry.
const MaxRating = 5

var (
	// ErrTransport marks a failed call to the persistence collaborator.
	ErrTransport = errors.New("transport failure")
	// ErrParse marks a collaborator response that does not match the record shape.
	ErrParse = errors.New("parse failure")
	// ErrValidation marks input rejected before it reaches the collaborator.
	ErrValidation = errors.New("validation failure")
)

// Item is a recurring goal a record can mark as completed.
type Item struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Active      bool   `json:"active" yaml:"active"`
	Order       int    `json:"order" yaml:"order"`
}

// WinEntry annotates one item on a record.
type WinEntry struct {
	ItemID    int64  `json:"item" yaml:"item"`
	Completed bool   `json:"completed,omitempty" yaml:"completed,omitempty"`
	Note      string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Record is one day's journal entry. A Rating of 0 means the day is unrated.
// An ID of 0 means the record has not been persisted yet.
type Record struct {
	ID     int64      `json:"id" yaml:"id"`
	Day    daykey.Key `json:"day" yaml:"day"`
	Rating int        `json:"rating,omitempty" yaml:"rating,omitempty"`
	Text   string     `json:"text,omitempty" yaml:"text,omitempty"`
	Wins   []WinEntry `json:"wins,omitempty" yaml:"wins,omitempty"`
}

// Rated reports whether the record carries a rating.
func (r Record) Rated() bool { return r.Rating > 0 }

// Completed reports whether the record has a completed entry for item.
func (r Record) Completed(item int64) bool {
	for _, w := range r.Wins {
		if w.ItemID == item && w.Completed {
			return true
		}
	}
	return false
}

// CompletedCount returns how many distinct items the record completes.
func (r Record) CompletedCount() int {
	seen := make(map[int64]struct{}, len(r.Wins))
	for _, w := range r.Wins {
		if w.Completed {
			seen[w.ItemID] = struct{}{}
		}
	}
	return len(seen)
}

// Validate checks the record before it is handed to persistence.
func (r Record) Validate() error {
	if !r.Day.Valid() {
		return fmt.Errorf("%w: malformed day %q", ErrValidation, r.Day)
	}
	if r.Rating < 0 || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating %d outside 1-%d", ErrValidation, r.Rating, MaxRating)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r.Wins != nil {
		r.Wins = append([]WinEntry(nil), r.Wins...)
	}
	return r
}

// ValidateRating checks a rating supplied by a user, 0 meaning "clear".
func ValidateRating(rating int) error {
	if rating < 0 || rating > MaxRating {
		return fmt.Errorf("%w: rating %d outside 1-%d", ErrValidation, rating, MaxRating)
	}
	return nil
}

// ActiveItems returns the active items, preserving order.
func ActiveItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Active {
			out = append(out, it)
		}
	}
	return out
}

// SortItems orders items by display rank, then ID.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
}

// FindItem returns the item with the given name, ignoring case.
func FindItem(items []Item, name string) (Item, bool) {
	for _, it := range items {
		if equalFold(it.Name, name) {
			return it, true
		}
	}
	return Item{}, false
}
