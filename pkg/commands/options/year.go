package options

import (
	"fmt"

	"github.com/spf13/cobra"
)

// YearOptions
type YearOptions struct {
	Year int
}

func AddYearArg(cmd *cobra.Command, o *YearOptions) {
	cmd.Flags().IntVar(&o.Year, "year", 0,
		"Calendar year, defaults to the current year.")
}

// GetYear returns the chosen year or current when unset.
func (o *YearOptions) GetYear(current int) (int, error) {
	if o.Year == 0 {
		return current, nil
	}
	if o.Year < 1 || o.Year > 9999 {
		return 0, fmt.Errorf("invalid year %d", o.Year)
	}
	return o.Year, nil
}
