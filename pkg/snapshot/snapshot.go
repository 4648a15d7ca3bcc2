// Package snapshot detects unsaved edits to a day by comparing canonical forms.
package snapshot

import (
	"slices"
	"strings"

	"tableflip.dev/wins/pkg/journal"
)

// WinState is the editable state of one tracked item for a day.
type WinState struct {
	ItemID    int64  `json:"item"`
	Completed bool   `json:"completed"`
	Note      string `json:"note"`
}

// Snapshot is the canonical form of an edit buffer.
type Snapshot struct {
	Rating int        `json:"rating"`
	Text   string     `json:"text"`
	Wins   []WinState `json:"wins"`
}

// New canonicalizes an edit buffer. Text and notes are trimmed; wins keep the
// order the tracked items were supplied in, and that order is significant.
func New(rating int, text string, wins []WinState) Snapshot {
	s := Snapshot{
		Rating: rating,
		Text:   strings.TrimSpace(text),
		Wins:   make([]WinState, len(wins)),
	}
	for i, w := range wins {
		s.Wins[i] = WinState{ItemID: w.ItemID, Completed: w.Completed, Note: strings.TrimSpace(w.Note)}
	}
	return s
}

// Equal reports structural equality.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Rating == o.Rating && s.Text == o.Text && slices.Equal(s.Wins, o.Wins)
}

// IsDirty reports whether current differs from initial.
func IsDirty(current, initial Snapshot) bool {
	return !current.Equal(initial)
}

// WinsFor seeds an edit buffer with one state per item, in item order,
// filled from the record's entries.
func WinsFor(items []journal.Item, r *journal.Record) []WinState {
	out := make([]WinState, 0, len(items))
	for _, it := range items {
		ws := WinState{ItemID: it.ID}
		if r != nil {
			for _, w := range r.Wins {
				if w.ItemID == it.ID {
					ws.Completed = w.Completed
					ws.Note = w.Note
					break
				}
			}
		}
		out = append(out, ws)
	}
	return out
}

// Payload converts an edit buffer into the entries persisted with a record:
// completed items only, notes trimmed.
func Payload(wins []WinState) []journal.WinEntry {
	var out []journal.WinEntry
	for _, w := range wins {
		if !w.Completed {
			continue
		}
		out = append(out, journal.WinEntry{ItemID: w.ItemID, Completed: true, Note: strings.TrimSpace(w.Note)})
	}
	return out
}
