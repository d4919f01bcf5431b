package store

import (
	"log"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config provides the store location and engine tuning knobs.
type Config interface {
	BasePath() string
	Debounce() time.Duration
}

// LoadConfig reads .growcal.yaml (working directory, or the directory named
// by GROWCAL_CONFIG_PATH) with GROWCAL_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.growcal.db")
	viper.SetDefault("debounce_ms", 300)
	viper.SetConfigName(".growcal") // .yaml is implicit
	viper.SetEnvPrefix("GROWCAL")
	viper.AutomaticEnv()

	if override := os.Getenv("GROWCAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return &fileConfig{
		Path:       path,
		DebounceMS: viper.GetInt("debounce_ms"),
	}, nil
}

type fileConfig struct {
	Path       string `json:"path"`
	DebounceMS int    `json:"debounce_ms"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Debounce() time.Duration {
	if f.DebounceMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(f.DebounceMS) * time.Millisecond
}
