package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(wins completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(wins completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func itemCompletions(ctx context.Context, toComplete string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := loadService()
	if err != nil {
		return nil
	}
	defer svc.Close()
	all, err := svc.Items(ctx, false)
	if err != nil {
		return nil
	}
	var names []string
	for _, it := range all {
		if strings.HasPrefix(strings.ToLower(it.Name), strings.ToLower(toComplete)) {
			names = append(names, strconv.Quote(it.Name))
		}
	}
	return names
}
