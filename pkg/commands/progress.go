package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/wins/pkg/commands/options"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/runner/progress"
)

func addProgress(topLevel *cobra.Command) {
	output := &base.OutputOptions{}
	yo := &options.YearOptions{}
	var (
		layout string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "show a year of days as a calendar",
		Example: `
wins progress
wins progress --year 2023 --layout week
wins progress --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := yo.GetYear(daykey.Today().Year())
			if err != nil {
				return output.HandleError(err)
			}
			switch layout {
			case "month", "week":
			default:
				return output.HandleError(fmt.Errorf("unknown layout %q, expected month or week", layout))
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			p := progress.Progress{
				Service: svc,
				Year:    year,
				Layout:  layout,
				JSON:    output.JSON,
				Watch:   watch,
				Out:     cmd.OutOrStdout(),
			}
			err = p.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	cmd.Flags().StringVar(&layout, "layout", "month", "Grid layout: month or week.")
	cmd.Flags().BoolVar(&watch, "watch", false, "Redraw when the journal changes.")
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
