package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/wins/pkg/runner/items"
)

func addItems(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "manage tracked items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addItemsList(cmd)
	addItemsAdd(cmd)
	addItemsActive(cmd, "retire", "stop tracking an item, keeping its history", false)
	addItemsActive(cmd, "restore", "track a retired item again", true)

	topLevel.AddCommand(cmd)
}

func addItemsList(parent *cobra.Command) {
	output := &base.OutputOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list tracked items",
		Example: `
wins items list
wins items list --all --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			l := items.List{
				Service: svc,
				All:     all,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = l.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include retired items.")
	base.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}

func addItemsAdd(parent *cobra.Command) {
	var (
		description string
		order       int
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "start tracking an item",
		Example: `
wins items add Exercise --description "30 minutes or more"
wins items add Read --order 1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Close()

			a := items.Add{
				Service:     svc,
				Name:        args[0],
				Description: description,
				Order:       order,
				Out:         cmd.OutOrStdout(),
			}
			return a.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What counts as a win for this item.")
	cmd.Flags().IntVar(&order, "order", 0, "Display position, defaults to last.")

	parent.AddCommand(cmd)
}

func addItemsActive(parent *cobra.Command, use, short string, active bool) {
	cmd := &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return itemCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Close()

			s := items.SetActive{
				Service: svc,
				Name:    args[0],
				Active:  active,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}
