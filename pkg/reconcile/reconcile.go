// Package reconcile merges record pages into a held record set by identity.
package reconcile

import "tableflip.dev/wins/pkg/journal"

// Reconcile returns the identity union of cached and fresh. On conflict the
// fresh copy replaces the cached one at the cached position; records only in
// fresh follow in fresh order. Unpersisted records (ID 0) are never merged.
func Reconcile(cached, fresh []journal.Record) []journal.Record {
	latest := make(map[int64]journal.Record, len(fresh))
	for _, r := range fresh {
		if r.ID == 0 {
			continue
		}
		if _, ok := latest[r.ID]; !ok {
			latest[r.ID] = r
		}
	}

	out := make([]journal.Record, 0, len(cached)+len(fresh))
	emitted := make(map[int64]struct{}, len(cached)+len(fresh))
	for _, r := range cached {
		if r.ID == 0 {
			out = append(out, r)
			continue
		}
		if _, done := emitted[r.ID]; done {
			continue
		}
		emitted[r.ID] = struct{}{}
		if f, ok := latest[r.ID]; ok {
			r = f
		}
		out = append(out, r)
	}
	for _, r := range fresh {
		if r.ID == 0 {
			out = append(out, r)
			continue
		}
		if _, done := emitted[r.ID]; done {
			continue
		}
		emitted[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ApplySaved drops every record sharing saved's identity and puts saved first,
// so an index built from the result finds it before any stale copy. Later
// duplicates of any other identity are dropped as well.
func ApplySaved(current []journal.Record, saved journal.Record) []journal.Record {
	out := make([]journal.Record, 0, len(current)+1)
	out = append(out, saved)
	seen := map[int64]struct{}{saved.ID: {}}
	for _, r := range current {
		if r.ID != 0 {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}
