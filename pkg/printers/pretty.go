package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/journal"
)

// PrettyPrint writes human-oriented output.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps journal text; 0 uses 80 columns.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Rating renders a 1-5 rating as filled and empty stars.
func Rating(n int) string {
	if n <= 0 {
		return color.New(color.Faint).Sprint("unrated")
	}
	if n > journal.MaxRating {
		n = journal.MaxRating
	}
	return color.New(color.FgHiYellow).Sprint(strings.Repeat("★", n)) +
		color.New(color.Faint).Sprint(strings.Repeat("☆", journal.MaxRating-n))
}

// Today prints a day with its items and streaks.
func (pp *PrettyPrint) Today(view app.TodayView) {
	pp.Title(view.Day.Time().Format("Monday, January 2 2006"))
	if view.Record == nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " nothing logged yet")
	} else {
		_, _ = fmt.Fprintf(pp.out(), " rating %s\n", Rating(view.Record.Rating))
	}
	pp.NewLine()
	pp.Streaks(view)
	if view.Record != nil && strings.TrimSpace(view.Record.Text) != "" {
		pp.Journal(view.Record.Text)
	}
}

// Streaks prints the overall streak and a table of items.
func (pp *PrettyPrint) Streaks(view app.TodayView) {
	b := color.New(color.Bold)
	_, _ = b.Fprintf(pp.out(), "Streak: %d %s\n\n", view.Overall, days(view.Overall))

	pp.TitleWithCount("Wins", len(view.Items), "item")
	if len(view.Items) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Done"), bold("Item"), bold("Streak"), bold("Note"))
	} else {
		tbl.AddRow(bold("Done"), bold("Item"), bold("Streak"), bold("Note"))
	}
	check := color.New(color.FgGreen)
	for _, st := range view.Items {
		mark := "·"
		if st.Completed {
			mark = check.Sprint("✓")
		}
		if pp.ShowID {
			tbl.AddRow(st.Item.ID, mark, st.Item.Name, st.Streak, st.Note)
			continue
		}
		tbl.AddRow(mark, st.Item.Name, st.Streak, st.Note)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Items prints the tracked item catalog.
func (pp *PrettyPrint) Items(items []journal.Item) {
	pp.TitleWithCount("Items", len(items), "item")
	if len(items) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("ID"), bold("Order"), bold("Name"), bold("Active"), bold("Description"))
	for _, it := range items {
		active := "yes"
		if !it.Active {
			active = color.New(color.Faint).Sprint("no")
		}
		tbl.AddRow(it.ID, it.Order, it.Name, active, it.Description)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Journal renders free text as markdown.
func (pp *PrettyPrint) Journal(text string) {
	width := pp.Width
	if width <= 0 {
		width = 80
	}
	out, err := RenderMarkdown(text, width)
	if err != nil {
		_, _ = fmt.Fprintln(pp.out(), text)
		return
	}
	_, _ = fmt.Fprint(pp.out(), out)
}

// RenderMarkdown formats text for a terminal of the given width.
func RenderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(strings.TrimSpace(text))
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
