package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/wins/pkg/daykey"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2020-2-28" or --on="2/28".`)
}

// GetOn resolves --on against today. Empty means today.
func (o *OnOptions) GetOn(today daykey.Key) (daykey.Key, error) {
	if o.OnString == "" {
		return today, nil
	}
	if k, err := daykey.Parse(o.OnString); err == nil {
		return k, nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err == nil {
		return daykey.New(t.Date()), nil
	}
	t, err = time.Parse(layoutISOShort, o.OnString)
	if err != nil {
		return "", fmt.Errorf("invalid day %q, expected YYYY-MM-DD or M/D", o.OnString)
	}
	// Let the year be the same, unless that lands after today: 12/30 asked
	// on 1/3 means last year.
	k := daykey.New(today.Year(), t.Month(), t.Day())
	if k.After(today) {
		k = daykey.New(today.Year()-1, t.Month(), t.Day())
	}
	return k, nil
}
