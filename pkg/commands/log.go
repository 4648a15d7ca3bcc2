package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/wins/pkg/commands/options"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/runner/log"
	"tableflip.dev/wins/pkg/snake"
)

func addLog(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	eo := &options.EntryOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "record a day",
		Long: `Record the rating, journal text, and wins of a day. Fields that are not
given keep their stored value. Days after today can not be logged.`,
		Example: `
wins log --rating 4 --win Exercise:5k --win Read
wins log --on 2/28 --text "shipped it"
wins log --undo Read
wins log -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := daykey.Today()
			day, err := on.GetOn(now)
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Close()

			l := log.Log{
				Service:     svc,
				Today:       now,
				Day:         day,
				Rating:      eo.RatingSet(),
				Text:        eo.TextSet(),
				Wins:        eo.Wins,
				Undo:        eo.Undo,
				Interactive: i.Interactive,
				Ask:         &snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
				Out:         cmd.OutOrStdout(),
			}
			return l.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddEntryArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
