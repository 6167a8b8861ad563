package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level optwatch configuration.
type Config struct {
	DBPath  string  `mapstructure:"db_path"`
	Workers int     `mapstructure:"workers"`
	Floors  Floors  `mapstructure:"floors"`
	Measure Measure `mapstructure:"measure"`
	Watch   Watch   `mapstructure:"watch"`
	Output  Output  `mapstructure:"output"`
}

// Floors defines the pattern filter floors for the system-wide prioritized
// entry point.
type Floors struct {
	MinOccurrence int     `mapstructure:"min_occurrence"`
	MinSeverity   int     `mapstructure:"min_severity"`
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// Measure defines effectiveness measurement parameters.
type Measure struct {
	WindowDays int `mapstructure:"window_days"`
	MinSamples int `mapstructure:"min_samples"`
}

// Watch defines watch-mode parameters.
type Watch struct {
	IntervalSeconds int     `mapstructure:"interval_seconds"`
	CapacityHours   float64 `mapstructure:"capacity_hours"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("floors.min_occurrence", DefaultFloors.MinOccurrence)
	v.SetDefault("floors.min_severity", DefaultFloors.MinSeverity)
	v.SetDefault("floors.min_confidence", DefaultFloors.MinConfidence)
	v.SetDefault("measure.window_days", DefaultMeasure.WindowDays)
	v.SetDefault("measure.min_samples", DefaultMeasure.MinSamples)
	v.SetDefault("watch.interval_seconds", DefaultWatch.IntervalSeconds)
	v.SetDefault("watch.capacity_hours", DefaultWatch.CapacityHours)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)

	return &cfg, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
