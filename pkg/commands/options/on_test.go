package options

import (
	"testing"

	"tableflip.dev/wins/pkg/daykey"
)

func TestGetOn(t *testing.T) {
	today := daykey.Key("2024-01-03")
	for in, want := range map[string]daykey.Key{
		"":           today,
		"2023-06-07": "2023-06-07",
		"2020-2-28":  "2020-02-28",
		"1/2":        "2024-01-02",
		"12/30":      "2023-12-30",
	} {
		o := &OnOptions{OnString: in}
		got, err := o.GetOn(today)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: want %s, got %s", in, want, got)
		}
	}
	if _, err := (&OnOptions{OnString: "someday"}).GetOn(today); err == nil {
		t.Fatal("expected error for garbage")
	}
}
