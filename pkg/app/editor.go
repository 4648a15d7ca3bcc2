package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
	"tableflip.dev/wins/pkg/reconcile"
	"tableflip.dev/wins/pkg/snapshot"
)

// Status is the state of the last load or save.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSaving
	StatusSaved
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Ticket identifies one load. Only the newest ticket may apply its result.
type Ticket uint64

// Decision is the answer to "leave a day with unsaved edits?".
type Decision int

const (
	// DecisionStay keeps the current day and its edits.
	DecisionStay Decision = iota
	// DecisionSave saves the edits, then leaves.
	DecisionSave
	// DecisionDiscard drops the edits and leaves.
	DecisionDiscard
)

// Confirmer is asked before unsaved edits would be left behind.
type Confirmer interface {
	ConfirmLeave(day daykey.Key) (Decision, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(day daykey.Key) (Decision, error)

func (f ConfirmFunc) ConfirmLeave(day daykey.Key) (Decision, error) { return f(day) }

var (
	// ErrFutureDay is returned when navigating past today.
	ErrFutureDay = errors.New("app: cannot open a day after today")
	// ErrNothingToSave is returned when saving an empty new record.
	ErrNothingToSave = errors.New("app: nothing to save")
)

// DayEditor owns the editing of one day at a time: the selected day, its
// edit buffer, the snapshot taken when it loaded, and the recent records
// used for streaks. A DayEditor must only be used by one goroutine.
type DayEditor struct {
	svc   *Service
	today daykey.Key
	items []journal.Item

	selected daykey.Key
	// loaded is the day the edit buffer belongs to.
	loaded   daykey.Key
	recordID int64
	rating   int
	text     string
	wins     []snapshot.WinState
	// retired holds the loaded record's entries for items no longer
	// tracked; saves write them back untouched.
	retired []journal.WinEntry
	initial snapshot.Snapshot

	held   []journal.Record
	status Status
	err    error
	gen    Ticket
}

// Editor loads today's record along with active items and recent history.
func (s *Service) Editor(ctx context.Context, today daykey.Key) (*DayEditor, error) {
	if !today.Valid() {
		return nil, fmt.Errorf("app: %w: bad day %q", journal.ErrValidation, today)
	}
	items, err := s.Items(ctx, true)
	if err != nil {
		return nil, err
	}
	held, err := s.Recent(ctx, today)
	if err != nil {
		return nil, err
	}
	e := &DayEditor{svc: s, today: today, items: items, held: held, selected: today}
	t := e.Request(today)
	r, err := s.Day(ctx, today)
	e.Deliver(t, r, err)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (e *DayEditor) Selected() daykey.Key  { return e.selected }
func (e *DayEditor) Today() daykey.Key     { return e.today }
func (e *DayEditor) RecordID() int64       { return e.recordID }
func (e *DayEditor) Rating() int           { return e.rating }
func (e *DayEditor) Text() string          { return e.text }
func (e *DayEditor) Status() Status        { return e.status }
func (e *DayEditor) Err() error            { return e.err }
func (e *DayEditor) Items() []journal.Item { return append([]journal.Item(nil), e.items...) }

// Wins returns a copy of the edit buffer's item states.
func (e *DayEditor) Wins() []snapshot.WinState {
	return append([]snapshot.WinState(nil), e.wins...)
}

// Held returns a copy of the records kept for streaks.
func (e *DayEditor) Held() []journal.Record {
	return append([]journal.Record(nil), e.held...)
}

// Snapshot returns the canonical form of the edit buffer.
func (e *DayEditor) Snapshot() snapshot.Snapshot {
	return snapshot.New(e.rating, e.text, e.wins)
}

// Dirty reports unsaved edits.
func (e *DayEditor) Dirty() bool {
	return snapshot.IsDirty(e.Snapshot(), e.initial)
}

// CanSave reports whether a save would persist anything. Existing records
// may always be saved, including to clear them.
func (e *DayEditor) CanSave() bool {
	if e.recordID != 0 {
		return true
	}
	if e.rating > 0 || strings.TrimSpace(e.text) != "" {
		return true
	}
	for _, w := range e.wins {
		if w.Completed {
			return true
		}
	}
	return false
}

// SetRating sets the rating; 0 clears it.
func (e *DayEditor) SetRating(rating int) error {
	if err := journal.ValidateRating(rating); err != nil {
		return err
	}
	e.rating = rating
	return nil
}

func (e *DayEditor) SetText(text string) { e.text = text }

// SetWin updates the state of one tracked item.
func (e *DayEditor) SetWin(item int64, completed bool, note string) error {
	for i := range e.wins {
		if e.wins[i].ItemID == item {
			e.wins[i].Completed = completed
			e.wins[i].Note = note
			return nil
		}
	}
	return fmt.Errorf("app: %w: item %d is not tracked", journal.ErrValidation, item)
}

// ToggleWin flips completion of one tracked item.
func (e *DayEditor) ToggleWin(item int64) error {
	for i := range e.wins {
		if e.wins[i].ItemID == item {
			e.wins[i].Completed = !e.wins[i].Completed
			return nil
		}
	}
	return fmt.Errorf("app: %w: item %d is not tracked", journal.ErrValidation, item)
}

// Request selects day and starts loading it. The returned ticket must be
// handed to Deliver with the load's result.
func (e *DayEditor) Request(day daykey.Key) Ticket {
	e.selected = day
	e.gen++
	e.status = StatusLoading
	e.err = nil
	return e.gen
}

// Deliver applies the result of the load identified by t. Results of
// superseded loads are dropped and Deliver reports false. A failed load
// selects the last loaded day again and leaves the edit buffer as it was.
func (e *DayEditor) Deliver(t Ticket, r *journal.Record, err error) bool {
	if t != e.gen {
		return false
	}
	if err != nil {
		e.selected = e.loaded
		e.status = StatusError
		e.err = err
		return true
	}
	e.apply(r)
	if r != nil {
		e.held = reconcile.Reconcile(e.held, []journal.Record{*r})
	}
	e.status = StatusIdle
	return true
}

func (e *DayEditor) apply(r *journal.Record) {
	e.loaded = e.selected
	e.recordID, e.rating, e.text = 0, 0, ""
	e.retired = nil
	if r != nil {
		e.recordID, e.rating, e.text = r.ID, r.Rating, r.Text
		tracked := make(map[int64]bool, len(e.items))
		for _, it := range e.items {
			tracked[it.ID] = true
		}
		for _, w := range r.Wins {
			if !tracked[w.ItemID] {
				e.retired = append(e.retired, w)
			}
		}
	}
	e.wins = snapshot.WinsFor(e.items, r)
	e.initial = e.Snapshot()
}

// Navigate moves to day. Unsaved edits are put to confirm first; a nil
// Confirmer keeps them and stays. Navigate reports whether day was opened.
func (e *DayEditor) Navigate(ctx context.Context, day daykey.Key, confirm Confirmer) (bool, error) {
	if !day.Valid() {
		return false, fmt.Errorf("app: %w: bad day %q", journal.ErrValidation, day)
	}
	if day == e.selected {
		return false, nil
	}
	if day.After(e.today) {
		return false, ErrFutureDay
	}
	if e.Dirty() {
		decision := DecisionStay
		if confirm != nil {
			var err error
			if decision, err = confirm.ConfirmLeave(e.selected); err != nil {
				return false, fmt.Errorf("app: confirm: %w", err)
			}
		}
		switch decision {
		case DecisionStay:
			return false, nil
		case DecisionSave:
			// Edits that persist nothing, like a note on an unchecked
			// item, are left behind.
			if _, err := e.Save(ctx); err != nil && !errors.Is(err, ErrNothingToSave) {
				return false, err
			}
		}
	}

	t := e.Request(day)
	r, err := e.svc.Day(ctx, day)
	if !e.Deliver(t, r, err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save persists the edit buffer. On failure the buffer is kept as is.
func (e *DayEditor) Save(ctx context.Context) (journal.Record, error) {
	if e.svc.Persistence == nil {
		return journal.Record{}, errNoPersistence
	}
	if !e.CanSave() {
		return journal.Record{}, ErrNothingToSave
	}
	rec := journal.Record{
		ID:     e.recordID,
		Day:    e.loaded,
		Rating: e.rating,
		Text:   strings.TrimSpace(e.text),
		Wins:   append(snapshot.Payload(e.wins), e.retired...),
	}
	e.status = StatusSaving
	saved, err := e.svc.Persistence.SaveJournal(ctx, rec, rec.ID != 0)
	if err != nil {
		e.status = StatusError
		e.err = err
		return journal.Record{}, fmt.Errorf("app: save %s: %w", e.loaded, err)
	}
	e.svc.Forget(ctx, saved.Day.Year())
	e.recordID = saved.ID
	e.initial = e.Snapshot()
	e.held = reconcile.ApplySaved(e.held, saved)
	e.status = StatusSaved
	e.err = nil
	return saved, nil
}

// View renders the selected day from the held records, so a save shows
// up in streaks without a refetch.
func (e *DayEditor) View() TodayView {
	return e.svc.todayView(e.selected, e.items, journal.BuildIndex(e.held))
}
