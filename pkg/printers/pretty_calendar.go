package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/grid"
	"tableflip.dev/wins/pkg/journal"
)

const width = len("11 12 13 14 15 16 17") // an example week

// CalendarStyles colors day cells by classification. Rated holds one style
// per score, index 0 unused.
type CalendarStyles struct {
	Header  lipgloss.Style
	Missing lipgloss.Style
	Unrated lipgloss.Style
	Rated   [6]lipgloss.Style
	Today   lipgloss.Style
}

// DefaultCalendarStyles shades ratings from red to green.
func DefaultCalendarStyles() CalendarStyles {
	base := lipgloss.NewStyle()
	return CalendarStyles{
		Header:  base.Italic(true).Foreground(lipgloss.Color("244")),
		Missing: base.Foreground(lipgloss.Color("238")),
		Unrated: base.Foreground(lipgloss.Color("250")),
		Rated: [6]lipgloss.Style{
			base,
			base.Foreground(lipgloss.Color("196")),
			base.Foreground(lipgloss.Color("208")),
			base.Foreground(lipgloss.Color("226")),
			base.Foreground(lipgloss.Color("112")),
			base.Bold(true).Foreground(lipgloss.Color("46")),
		},
		Today: base.Underline(true),
	}
}

func (s CalendarStyles) cell(st grid.DayState, today daykey.Key) string {
	style := s.Missing
	switch st.Kind {
	case grid.Unrated:
		style = s.Unrated
	case grid.Rated:
		if st.Rating >= 1 && st.Rating < len(s.Rated) {
			style = s.Rated[st.Rating]
		}
	}
	if st.Day == today {
		style = style.Inherit(s.Today)
	}
	return style.Render(fmt.Sprintf("%2d", st.Day.Day()))
}

// RenderMonth lays out one month's states under a Su..Sa header.
func RenderMonth(states []grid.DayState, today daykey.Key, s CalendarStyles) string {
	if len(states) == 0 {
		return ""
	}
	first := states[0].Day
	title := first.Month().String()
	mid := (width - len(title)) / 2
	lines := []string{
		s.Header.Render(strings.Repeat(" ", mid) + title + strings.Repeat(" ", width-mid-len(title))),
		s.Header.Render("Su Mo Tu We Th Fr Sa"),
	}

	offset := int(first.Weekday())
	var cells []string
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}
	for _, st := range states {
		cells = append(cells, s.cell(st, today))
		if len(cells) == grid.DaysPerWeek {
			lines = append(lines, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		lines = append(lines, strings.Join(cells, " "))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// RenderYear places months in rows of perRow.
func RenderYear(months [][]grid.DayState, today daykey.Key, perRow int, s CalendarStyles) string {
	if perRow <= 0 {
		perRow = 3
	}
	gutter := lipgloss.NewStyle().PaddingRight(3)
	var rows []string
	for i := 0; i < len(months); i += perRow {
		var blocks []string
		for j := i; j < i+perRow && j < len(months); j++ {
			blocks = append(blocks, gutter.Render(RenderMonth(months[j], today, s)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return strings.Join(rows, "\n\n")
}

// RenderWeeks draws the year as a contribution strip: one column per week,
// one row per weekday, nil placeholders left blank.
func RenderWeeks(weeks [][]*grid.DayState, today daykey.Key, s CalendarStyles) string {
	glyph := func(st *grid.DayState) string {
		if st == nil {
			return " "
		}
		style := s.Missing
		switch st.Kind {
		case grid.Unrated:
			style = s.Unrated
		case grid.Rated:
			style = s.Rated[st.Rating]
		}
		if st.Day == today {
			style = style.Inherit(s.Today)
		}
		if st.Kind == grid.Missing {
			return style.Render("·")
		}
		return style.Render("■")
	}

	labels := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	var lines []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		var b strings.Builder
		b.WriteString(s.Header.Render(labels[wd]))
		b.WriteString(" ")
		for _, week := range weeks {
			var st *grid.DayState
			if int(wd) < len(week) {
				st = week[wd]
			}
			b.WriteString(glyph(st))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Summary prints the counts and mean of a year.
func (pp *PrettyPrint) Summary(sum grid.Summary) {
	tf := color.New(color.Bold)
	_, _ = tf.Fprintf(pp.out(), "%d of %d days logged", sum.Logged(), sum.Days)
	if sum.Rated > 0 {
		_, _ = fmt.Fprintf(pp.out(), ", mean rating %s", sum.Mean.StringFixed(2))
	}
	_, _ = fmt.Fprintln(pp.out())
	for score := journal.MaxRating; score >= 1; score-- {
		if sum.ByScore[score] == 0 {
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s %d\n", Rating(score), sum.ByScore[score])
	}
	if sum.Unrated > 0 {
		_, _ = fmt.Fprintf(pp.out(), "  %s %d\n", Rating(0), sum.Unrated)
	}
}

// Progress prints a year in the chosen layout followed by its summary.
func (pp *PrettyPrint) Progress(view app.YearView, today daykey.Key, layout string) {
	s := DefaultCalendarStyles()
	pp.Title(fmt.Sprintf("%d", view.Year))
	pp.NewLine()
	switch layout {
	case "week", "weeks":
		_, _ = fmt.Fprintln(pp.out(), RenderWeeks(view.Weeks, today, s))
	default:
		_, _ = fmt.Fprintln(pp.out(), RenderYear(view.Months, today, 3, s))
	}
	pp.NewLine()
	pp.Summary(view.Summary)
}
