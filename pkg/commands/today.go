package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/wins/pkg/commands/options"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/runner/today"
)

func addToday(topLevel *cobra.Command) {
	addDayCommand(topLevel, &cobra.Command{
		Use:   "today",
		Short: "show today with wins and streaks",
		Example: `
wins today
wins today --json
`,
	}, today.ModeDay, false)
}

func addShow(topLevel *cobra.Command) {
	addDayCommand(topLevel, &cobra.Command{
		Use:   "show",
		Short: "show a day's journal",
		Example: `
wins show
wins show --on 2/28
`,
	}, today.ModeJournal, true)
}

func addStreak(topLevel *cobra.Command) {
	addDayCommand(topLevel, &cobra.Command{
		Use:     "streak",
		Aliases: []string{"streaks"},
		Short:   "show overall and per item streaks",
		Example: `
wins streak
wins streak --on 2024-03-01 -k
`,
	}, today.ModeStreaks, true)
}

func addDayCommand(topLevel *cobra.Command, cmd *cobra.Command, mode today.Mode, withOn bool) {
	output := &base.OutputOptions{}
	on := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		day, err := on.GetOn(daykey.Today())
		if err != nil {
			return output.HandleError(err)
		}
		svc, err := loadService()
		if err != nil {
			return output.HandleError(err)
		}
		defer svc.Close()

		s := today.Today{
			Service: svc,
			Day:     day,
			Mode:    mode,
			ShowID:  io.ShowID,
			JSON:    output.JSON,
			Out:     cmd.OutOrStdout(),
		}
		err = s.Do(cmd.Context())
		return output.HandleError(err)
	}

	if withOn {
		options.AddOnArgs(cmd, on)
	}
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
