package items

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/printers"
)

// List prints tracked items.
type List struct {
	Service *app.Service
	All     bool
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list items, no service")
	}
	items, err := l.Service.Items(ctx, !l.All)
	if err != nil {
		return err
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}
	if l.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Items(items)
	return nil
}

// Add creates a tracked item.
type Add struct {
	Service     *app.Service
	Name        string
	Description string
	Order       int
	Out         io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("can not add item, no service")
	}
	it, err := a.Service.AddItem(ctx, a.Name, a.Description, a.Order)
	if err != nil {
		return err
	}
	out := a.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "added %s (id %d, order %d)\n", color.New(color.Bold).Sprint(it.Name), it.ID, it.Order)
	return nil
}

// SetActive retires or restores a tracked item.
type SetActive struct {
	Service *app.Service
	Name    string
	Active  bool
	Out     io.Writer
}

func (s *SetActive) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not update item, no service")
	}
	it, err := s.Service.SetItemActive(ctx, s.Name, s.Active)
	if err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}
	state := "retired"
	if it.Active {
		state = "restored"
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", state, it.Name)
	return nil
}
