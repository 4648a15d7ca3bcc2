package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
	"tableflip.dev/wins/pkg/printers"
)

// Asker answers the questions of an interactive session. snake.Prompter
// is the terminal implementation.
type Asker interface {
	String(label, def string, validate func(string) error) (string, error)
	Int(label string, def, lo, hi int) (int, error)
	Bool(label string, def bool) (bool, error)
	Select(label string, choices []string) (int, error)
}

// Log edits and saves one day, or runs an interactive session over days.
type Log struct {
	Service *app.Service
	// Today bounds navigation; empty means the current day.
	Today daykey.Key
	// Day to edit; empty means Today.
	Day    daykey.Key
	Rating *int
	Text   *string
	// Wins are NAME or NAME:note, marking the item completed.
	Wins []string
	// Undo are item names to mark not completed.
	Undo        []string
	Interactive bool
	Ask         Asker
	Out         io.Writer
}

func (l *Log) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return color.Output
}

func (l *Log) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not log, no service")
	}
	today := l.Today
	if today == "" {
		today = daykey.Today()
	}
	ed, err := l.Service.Editor(ctx, today)
	if err != nil {
		return err
	}
	if l.Day != "" {
		if _, err := ed.Navigate(ctx, l.Day, nil); err != nil {
			return err
		}
	}
	if err := l.applyFlags(ed); err != nil {
		return err
	}

	if l.Interactive {
		if l.Ask == nil {
			return errors.New("interactive logging needs a prompt")
		}
		return l.session(ctx, ed)
	}

	if !ed.Dirty() {
		_, _ = fmt.Fprintf(l.out(), "nothing changed for %s\n", ed.Selected())
		return nil
	}
	return l.save(ctx, ed)
}

func (l *Log) save(ctx context.Context, ed *app.DayEditor) error {
	saved, err := ed.Save(ctx)
	if err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(l.out(), "saved %s\n", saved.Day)
	pp := printers.PrettyPrint{Out: l.out()}
	pp.NewLine()
	pp.Streaks(ed.View())
	return nil
}

func (l *Log) applyFlags(ed *app.DayEditor) error {
	if l.Rating != nil {
		if err := ed.SetRating(*l.Rating); err != nil {
			return err
		}
	}
	if l.Text != nil {
		ed.SetText(*l.Text)
	}
	items := ed.Items()
	for _, w := range l.Wins {
		name, note, _ := strings.Cut(w, ":")
		it, ok := journal.FindItem(items, name)
		if !ok {
			return fmt.Errorf("%w: unknown item %q", journal.ErrValidation, name)
		}
		if err := ed.SetWin(it.ID, true, note); err != nil {
			return err
		}
	}
	for _, name := range l.Undo {
		it, ok := journal.FindItem(items, name)
		if !ok {
			return fmt.Errorf("%w: unknown item %q", journal.ErrValidation, name)
		}
		if err := ed.SetWin(it.ID, false, ""); err != nil {
			return err
		}
	}
	return nil
}

// ConfirmLeave asks what to do with unsaved edits on day.
func (l *Log) ConfirmLeave(day daykey.Key) (app.Decision, error) {
	i, err := l.Ask.Select(fmt.Sprintf("Unsaved changes on %s", day), []string{"Save first", "Discard changes", "Stay"})
	if err != nil {
		return app.DecisionStay, err
	}
	switch i {
	case 0:
		return app.DecisionSave, nil
	case 1:
		return app.DecisionDiscard, nil
	default:
		return app.DecisionStay, nil
	}
}

func (l *Log) session(ctx context.Context, ed *app.DayEditor) error {
	for {
		if err := l.edit(ed); err != nil {
			return err
		}
		if ed.Dirty() {
			ok, err := l.Ask.Bool(fmt.Sprintf("Save %s", ed.Selected()), true)
			if err != nil {
				return err
			}
			if ok {
				if err := l.save(ctx, ed); err != nil {
					_, _ = color.New(color.FgRed).Fprintf(l.out(), "%v\n", err)
				}
			}
		}

		next, err := l.Ask.String("Open another day (YYYY-MM-DD, blank to finish)", "", func(s string) error {
			_, err := daykey.Parse(s)
			return err
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(next) == "" {
			if !ed.Dirty() {
				return nil
			}
			decision, err := l.ConfirmLeave(ed.Selected())
			if err != nil {
				return err
			}
			switch decision {
			case app.DecisionSave:
				if err := l.save(ctx, ed); err != nil && !errors.Is(err, app.ErrNothingToSave) {
					return err
				}
				return nil
			case app.DecisionDiscard:
				return nil
			}
			continue
		}

		day, err := daykey.Parse(next)
		if err != nil {
			return err
		}
		if _, err := ed.Navigate(ctx, day, l); err != nil {
			_, _ = color.New(color.FgRed).Fprintf(l.out(), "%v\n", err)
		}
	}
}

func (l *Log) edit(ed *app.DayEditor) error {
	_, _ = color.New(color.Bold, color.Underline).Fprintln(l.out(), ed.Selected().Time().Format("Monday, January 2 2006"))

	rating, err := l.Ask.Int("Rating (1-5, 0 for none)", ed.Rating(), 0, journal.MaxRating)
	if err != nil {
		return err
	}
	if err := ed.SetRating(rating); err != nil {
		return err
	}

	text, err := l.Ask.String("Journal", ed.Text(), nil)
	if err != nil {
		return err
	}
	ed.SetText(text)

	names := make(map[int64]string)
	for _, it := range ed.Items() {
		names[it.ID] = it.Name
	}
	for _, w := range ed.Wins() {
		done, err := l.Ask.Bool(names[w.ItemID], w.Completed)
		if err != nil {
			return err
		}
		note := ""
		if done {
			if note, err = l.Ask.String("Note", w.Note, nil); err != nil {
				return err
			}
		}
		if err := ed.SetWin(w.ItemID, done, note); err != nil {
			return err
		}
	}
	return nil
}
