package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/wins/pkg/commands/options"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/printers"
	"tableflip.dev/wins/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	output := &base.OutputOptions{}
	on := &options.OnOptions{}
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize ratings and wins over recent days",
		Long: `Report counts logged days, averages ratings, and shows how often each item
was completed within the window ending today (or --on).

Examples:
  wins report
  wins report --last 30d
  wins report --last 2w --on 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, label, err := timeutil.ParseWindow(last)
			if err != nil {
				return output.HandleError(err)
			}
			until, err := on.GetOn(daykey.Today())
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			result, err := svc.Report(cmd.Context(), until, days)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			pp := printers.PrettyPrint{Out: cmd.OutOrStdout()}
			pp.Report(result, label)
			return nil
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "window of days to include (for example 10d, 2w)")
	options.AddOnArgs(cmd, on)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
