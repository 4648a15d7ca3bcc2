package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/wins/pkg/app"
)

// Report prints a window summary and per item completion rates.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	pp.Title(fmt.Sprintf("Report · last %s (%s → %s)", label, result.Since, result.Until))
	pp.NewLine()
	pp.Summary(result.Summary)
	pp.NewLine()

	pp.TitleWithCount("Wins", result.Total, "completion")
	if len(result.Items) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Item"), bold("Done"), bold("Rate"))
	for _, it := range result.Items {
		name := it.Item.Name
		if !it.Item.Active {
			name = color.New(color.Faint).Sprint(name + " (retired)")
		}
		tbl.AddRow(name, fmt.Sprintf("%d/%d", it.Completed, result.Summary.Days), it.Rate.String()+"%")
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
