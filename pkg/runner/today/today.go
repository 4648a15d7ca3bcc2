package today

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/printers"
)

// Mode selects what part of a day is printed.
type Mode int

const (
	// ModeDay prints the rating, items with streaks, and journal text.
	ModeDay Mode = iota
	// ModeStreaks prints only the streak table.
	ModeStreaks
	// ModeJournal prints only the journal text.
	ModeJournal
)

type Today struct {
	Service *app.Service
	Day     daykey.Key
	Mode    Mode
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (t *Today) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return color.Output
}

func (t *Today) Do(ctx context.Context) error {
	if t.Service == nil {
		return errors.New("can not show day, no service")
	}
	day := t.Day
	if day == "" {
		day = daykey.Today()
	}
	view, err := t.Service.Today(ctx, day)
	if err != nil {
		return err
	}

	if t.JSON {
		enc := json.NewEncoder(t.out())
		enc.SetIndent("", "  ")
		switch t.Mode {
		case ModeJournal:
			return enc.Encode(view.Record)
		default:
			return enc.Encode(view)
		}
	}

	pp := printers.PrettyPrint{ShowID: t.ShowID, Out: t.out()}
	pp.NewLine()
	switch t.Mode {
	case ModeStreaks:
		pp.Title(fmt.Sprintf("Streaks as of %s", day))
		pp.Streaks(view)
	case ModeJournal:
		pp.Title(day.Time().Format("Monday, January 2 2006"))
		if view.Record == nil || view.Record.Text == "" {
			_, _ = fmt.Fprintln(t.out(), color.New(color.Faint, color.Italic).Sprint(" no journal"))
			return nil
		}
		pp.Journal(view.Record.Text)
	default:
		pp.Today(view)
	}
	return nil
}
