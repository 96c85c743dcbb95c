package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dvrsweep/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.True(t, cfg.Missing)
	assert.Equal(t, DefaultDVRAddr, cfg.DVRAddr)
	assert.Equal(t, domain.DefaultKeepCount, cfg.Retention.DefaultKeep)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Empty(t, cfg.Retention.ShowOverrides)
	assert.False(t, cfg.Discord.Enabled)
}

func TestLoadReadsFileValues(t *testing.T) {
	path := writeConfig(t, `{
		"dvr_ip": "10.0.0.7:59090",
		"default_episodes": 3,
		"poll_interval_minutes": 15,
		"show_overrides": {"Jeopardy!": 2, "The Price is Right": 0},
		"discord": {"enabled": true, "notify_on_startup": false}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Missing)
	assert.Equal(t, "10.0.0.7:59090", cfg.DVRAddr)
	assert.Equal(t, 3, cfg.Retention.DefaultKeep)
	assert.Equal(t, 15*time.Minute, cfg.PollInterval)
	assert.Equal(t, map[string]int{"Jeopardy!": 2, "The Price is Right": 0}, cfg.Retention.ShowOverrides)

	assert.True(t, cfg.Discord.Enabled)
	assert.False(t, cfg.Discord.NotifyOnStartup)
	assert.True(t, cfg.Discord.NotifyOnCleanup)
	assert.True(t, cfg.Discord.NotifyOnError)
}

func TestLoadShowOverrideKeysKeepTheirCase(t *testing.T) {
	path := writeConfig(t, `{"show_overrides": {"JEOPARDY!": 1}}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, ok := cfg.Retention.ShowOverrides["JEOPARDY!"]
	assert.True(t, ok, "override key must keep its original case")
}

func TestLoadEnvVarBeatsFileValue(t *testing.T) {
	path := writeConfig(t, `{"dvr_ip": "10.0.0.7:59090"}`)
	t.Setenv("DVR_IP", "192.168.1.2:59090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.2:59090", cfg.DVRAddr)
}

func TestLoadEnvVarBeatsDefaultWithoutFile(t *testing.T) {
	t.Setenv("DVR_IP", "192.168.1.2:59090")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.2:59090", cfg.DVRAddr)
}

func TestLoadRejectsNegativeRetention(t *testing.T) {
	path := writeConfig(t, `{"default_episodes": -1}`)

	_, err := Load(path)
	require.ErrorIs(t, err, domain.ErrInvalidRetention)
}

func TestLoadRejectsNegativeShowOverride(t *testing.T) {
	path := writeConfig(t, `{"show_overrides": {"News": -2}}`)

	_, err := Load(path)
	require.ErrorIs(t, err, domain.ErrInvalidRetention)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `{"dvr_ip": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadRejectsNonPositivePollInterval(t *testing.T) {
	path := writeConfig(t, `{"poll_interval_minutes": 0}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll_interval_minutes")
}

func TestLoadZeroDefaultEpisodesIsValid(t *testing.T) {
	path := writeConfig(t, `{"default_episodes": 0}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Retention.DefaultKeep)
}
