package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/printers"
	"tableflip.dev/wins/pkg/store"
)

type Progress struct {
	Service *app.Service
	Year    int
	Layout  string
	JSON    bool
	// Watch redraws whenever the store changes until ctx is done.
	Watch bool
	Out   io.Writer
}

func (p *Progress) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return color.Output
}

func (p *Progress) Do(ctx context.Context) error {
	if p.Service == nil {
		return errors.New("can not show progress, no service")
	}
	if p.Year == 0 {
		p.Year = daykey.Today().Year()
	}
	browser := p.Service.Years()
	view, err := browser.Load(ctx, p.Year)
	if err != nil && !p.Watch {
		return err
	}
	p.render(view, err)
	if !p.Watch {
		return nil
	}

	events, err := p.Service.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == store.EventItemsChanged {
				continue
			}
			if ev.Type == store.EventJournalChanged && ev.Day.Year() != p.Year {
				continue
			}
			p.Service.Forget(ctx, p.Year)
			view, err := browser.Load(ctx, p.Year)
			p.render(view, err)
		}
	}
}

func (p *Progress) render(view app.YearView, err error) {
	if p.JSON {
		enc := json.NewEncoder(p.out())
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(view); encErr != nil {
			fmt.Fprintf(os.Stderr, "progress: %v\n", encErr)
		}
		return
	}
	pp := printers.PrettyPrint{Out: p.out()}
	pp.NewLine()
	pp.Progress(view, daykey.Today(), p.Layout)
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(p.out(), "refresh failed: %v\n", err)
	}
}
