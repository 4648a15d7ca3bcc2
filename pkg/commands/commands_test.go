package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tableflip.dev/wins/pkg/app"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("wins %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCommandsEndToEnd(t *testing.T) {
	t.Setenv("WINS_CONFIG_PATH", t.TempDir())
	t.Setenv("WINS_PATH", t.TempDir())
	t.Setenv("WINS_BACKEND", "diskv")

	run(t, "items", "add", "Exercise")
	run(t, "items", "add", "Read", "--description", "a chapter")

	out := run(t, "log", "--on", "2024-03-04", "--rating", "4", "--text", "solid", "--win", "Exercise:5k")
	if !strings.Contains(out, "saved 2024-03-04") {
		t.Fatalf("unexpected log output %q", out)
	}
	run(t, "log", "--on", "2024-03-05", "--win", "exercise", "--win", "Read")

	var view app.TodayView
	if err := json.Unmarshal([]byte(run(t, "streak", "--on", "2024-03-05", "--json")), &view); err != nil {
		t.Fatalf("decode streak: %v", err)
	}
	if view.Overall != 2 || view.Items[0].Streak != 2 || view.Items[1].Streak != 1 {
		t.Fatalf("unexpected streaks %+v", view)
	}

	yaml := run(t, "export", "--year", "2024", "-o", "yaml")
	for _, want := range []string{"year: 2024", "2024-03-04", "text: solid"} {
		if !strings.Contains(yaml, want) {
			t.Fatalf("expected %q in export:\n%s", want, yaml)
		}
	}

	run(t, "items", "retire", "Read")
	if out := run(t, "items", "list", "--json"); strings.Contains(out, "Read") {
		t.Fatalf("retired item listed: %s", out)
	}
}

func TestProgressRejectsLayout(t *testing.T) {
	t.Setenv("WINS_CONFIG_PATH", t.TempDir())
	t.Setenv("WINS_PATH", t.TempDir())
	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"progress", "--layout", "spiral"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestLogRefusesFuture(t *testing.T) {
	t.Setenv("WINS_CONFIG_PATH", t.TempDir())
	t.Setenv("WINS_PATH", t.TempDir())
	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"log", "--on", "9999-12-31", "--rating", "3"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for a future day")
	}
}
