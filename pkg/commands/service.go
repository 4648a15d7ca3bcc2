package commands

import (
	"fmt"
	"os"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/cache"
	"tableflip.dev/wins/pkg/store"
	"tableflip.dev/wins/pkg/streak"
)

// loadService wires the configured store and the optional year cache.
// An unreachable cache is reported and skipped.
func loadService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Streaks:     streak.New(cfg.Lookback()),
	}
	if url := cfg.RedisURL(); url != "" {
		c, err := cache.NewRedisCache(url)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "wins: cache disabled: %v\n", err)
		} else {
			svc.Cache = c
		}
	}
	return svc, nil
}
