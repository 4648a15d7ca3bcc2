package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/wins/pkg/streak"
)

// Backend names a persistence implementation.
type Backend string

const (
	// BackendDiskv stores one JSON file per record.
	BackendDiskv Backend = "diskv"
	// BackendSQLite stores records in a single SQLite database file.
	BackendSQLite Backend = "sqlite"
)

// Config describes where and how journals are persisted.
type Config interface {
	BasePath() string
	Backend() Backend
	Lookback() int
	RedisURL() string
}

// LoadConfig reads .wins.yaml from WINS_CONFIG_PATH or the working directory,
// with WINS_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.wins.db")
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("lookback", streak.DefaultLookback)
	v.SetDefault("redis", "")
	v.SetConfigName(".wins") // .yaml is implicit
	v.SetEnvPrefix("WINS")
	v.AutomaticEnv()

	if override := os.Getenv("WINS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	backend := Backend(strings.ToLower(strings.TrimSpace(v.GetString("backend"))))
	switch backend {
	case BackendDiskv, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}

	return StaticConfig{
		Path:   path,
		Kind:   backend,
		Window: v.GetInt("lookback"),
		Redis:  strings.TrimSpace(v.GetString("redis")),
	}, nil
}

// StaticConfig is a Config built in code, mostly for tests and embedding.
type StaticConfig struct {
	Path   string
	Kind   Backend
	Window int
	Redis  string
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) Backend() Backend {
	if s.Kind == "" {
		return BackendDiskv
	}
	return s.Kind
}

func (s StaticConfig) Lookback() int {
	if s.Window <= 0 {
		return streak.DefaultLookback
	}
	return s.Window
}

func (s StaticConfig) RedisURL() string { return s.Redis }
