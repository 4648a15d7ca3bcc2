package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/wins/pkg/commands/options"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	format := "json"

	cmd := &cobra.Command{
		Use:   "export",
		Short: "export a year of records",
		Example: `
wins export > 2024.json
wins export --year 2023 -o yaml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := yo.GetYear(daykey.Today().Year())
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Close()

			e := export.Export{
				Service: svc,
				Year:    year,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			return e.Do(cmd.Context())
		},
	}

	options.AddYearArg(cmd, yo)
	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
