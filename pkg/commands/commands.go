package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "wins",
		Short: base.Wrap80("Rate your day, journal it, and keep streaks of small wins."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addToday(topLevel)
	addShow(topLevel)
	addStreak(topLevel)
	addLog(topLevel)
	addProgress(topLevel)
	addItems(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
