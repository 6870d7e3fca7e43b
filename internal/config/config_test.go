package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lento.yaml")
	raw := []byte("max_daily_quests: 3\nactivity_path: /tmp/activity.json\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDailyQuests)
	assert.Equal(t, "/tmp/activity.json", cfg.ActivityPath)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().AssignmentRetentionDays, cfg.AssignmentRetentionDays)
	assert.Equal(t, Default().XPRetentionDays, cfg.XPRetentionDays)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lento.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_daily_quests: -2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().MaxDailyQuests, cfg.MaxDailyQuests)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lento.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_daily_quests: [broken\n"), 0o644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}
