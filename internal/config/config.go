package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the engine tuning loaded from the optional ~/.lento.yaml.
type Config struct {
	// DBPath overrides where engine state lives.
	DBPath string `yaml:"db_path"`
	// ActivityPath points at the activity snapshot exported by the host app.
	ActivityPath string `yaml:"activity_path"`

	MaxDailyQuests          int `yaml:"max_daily_quests"`
	AssignmentRetentionDays int `yaml:"assignment_retention_days"`
	XPRetentionDays         int `yaml:"xp_retention_days"`
}

func Default() Config {
	return Config{
		MaxDailyQuests:          4,
		AssignmentRetentionDays: 14,
		XPRetentionDays:         30,
	}
}

// DefaultPath returns ~/.lento.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".lento.yaml"), nil
}

// Load reads the config file at path, layering it over defaults. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.MaxDailyQuests <= 0 {
		cfg.MaxDailyQuests = Default().MaxDailyQuests
	}
	if cfg.AssignmentRetentionDays <= 0 {
		cfg.AssignmentRetentionDays = Default().AssignmentRetentionDays
	}
	if cfg.XPRetentionDays <= 0 {
		cfg.XPRetentionDays = Default().XPRetentionDays
	}
	return cfg, nil
}
