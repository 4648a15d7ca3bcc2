package options

import (
	"github.com/spf13/cobra"
)

// EntryOptions carries the fields of a day entered from flags. Rating and
// Text only apply when their flag was set.
type EntryOptions struct {
	Rating int
	Text   string
	Wins   []string
	Undo   []string

	cmd *cobra.Command
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	o.cmd = cmd
	cmd.Flags().IntVarP(&o.Rating, "rating", "r", 0,
		"Rate the day from 1 to 5, 0 clears the rating.")
	cmd.Flags().StringVarP(&o.Text, "text", "t", "",
		"Journal text for the day, replaces what is stored.")
	cmd.Flags().StringSliceVarP(&o.Wins, "win", "w", nil,
		`Mark an item done, optionally with a note: --win="Exercise:5k run".`)
	cmd.Flags().StringSliceVar(&o.Undo, "undo", nil,
		"Mark an item not done.")
}

// RatingSet returns the rating if --rating was given.
func (o *EntryOptions) RatingSet() *int {
	if o.cmd == nil || !o.cmd.Flags().Changed("rating") {
		return nil
	}
	r := o.Rating
	return &r
}

// TextSet returns the text if --text was given.
func (o *EntryOptions) TextSet() *string {
	if o.cmd == nil || !o.cmd.Flags().Changed("text") {
		return nil
	}
	t := o.Text
	return &t
}
