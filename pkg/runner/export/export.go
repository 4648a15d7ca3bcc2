package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/grid"
	"tableflip.dev/wins/pkg/journal"
)

// Document is the exported form of one year.
type Document struct {
	Year    int              `json:"year" yaml:"year"`
	Items   []journal.Item   `json:"items" yaml:"items"`
	Records []journal.Record `json:"records" yaml:"records"`
	Summary grid.Summary     `json:"summary" yaml:"summary"`
}

type Export struct {
	Service *app.Service
	Year    int
	// Format is json or yaml.
	Format string
	Out    io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not export, no service")
	}
	if e.Year == 0 {
		e.Year = daykey.Today().Year()
	}
	items, err := e.Service.Items(ctx, false)
	if err != nil {
		return err
	}
	view, err := e.Service.Progress(ctx, e.Year)
	if err != nil {
		return err
	}
	doc := Document{Year: e.Year, Items: items, Records: view.Records, Summary: view.Summary}
	if doc.Records == nil {
		doc.Records = []journal.Record{}
	}
	return Write(e.out(), doc, e.Format)
}

func (e *Export) out() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

// Write encodes doc in the given format.
func Write(w io.Writer, doc Document, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output %q (expected json or yaml)", format)
	}
}
