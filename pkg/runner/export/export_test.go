package export

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"tableflip.dev/wins/pkg/grid"
	"tableflip.dev/wins/pkg/journal"
)

func sampleDoc() Document {
	records := []journal.Record{
		{ID: 1, Day: "2024-01-01", Rating: 4, Text: "first", Wins: []journal.WinEntry{{ItemID: 7, Completed: true, Note: "5k"}}},
		{ID: 2, Day: "2024-01-02"},
	}
	idx := journal.BuildIndex(records)
	return Document{
		Year:    2024,
		Items:   []journal.Item{{ID: 7, Name: "Exercise", Active: true, Order: 1}},
		Records: records,
		Summary: grid.Summarize(grid.Month(2024, 1, idx)),
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDoc(), "yaml"); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"year: 2024", "day: \"2024-01-01\"", "item: 7", "note: 5k", "mean: \"4\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}

	var back struct {
		Records []journal.Record `yaml:"records"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Records) != 2 || back.Records[0].Day != "2024-01-01" || !back.Records[0].Completed(7) {
		t.Fatalf("unexpected records %+v", back.Records)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDoc(), "json"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"day": "2024-01-01"`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sampleDoc(), "xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}
