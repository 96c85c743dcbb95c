// Package config loads the dvrsweep configuration file and environment
// overlay.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/dvrsweep/internal/domain"
)

const (
	// DefaultDVRAddr is the last-resort device address when neither the
	// DVR_IP environment variable nor the config file provide one.
	DefaultDVRAddr = "192.168.86.34:59090"

	DefaultPollInterval = time.Minute

	dvrAddrKey      = "dvr_ip"
	defaultKeepKey  = "default_episodes"
	pollIntervalKey = "poll_interval_minutes"
)

// Discord controls webhook notifications. The webhook URL itself is taken
// from the DISCORD_WEBHOOK_URL environment variable, never from the file.
type Discord struct {
	Enabled         bool `mapstructure:"enabled"`
	NotifyOnCleanup bool `mapstructure:"notify_on_cleanup"`
	NotifyOnStartup bool `mapstructure:"notify_on_startup"`
	NotifyOnError   bool `mapstructure:"notify_on_error"`
}

// Config is the immutable run configuration, loaded once at startup.
// Continuous mode requires a restart to pick up changes.
type Config struct {
	DVRAddr      string
	PollInterval time.Duration
	Retention    domain.RetentionPolicy
	Discord      Discord

	// Missing reports that no config file was found and defaults are in
	// effect; callers log this as a warning rather than failing.
	Missing bool
}

// Load reads the config file at path and applies the environment overlay.
//
// The device address follows its own precedence chain: DVR_IP environment
// variable, then the file value, then DefaultDVRAddr. This chain is distinct
// from the keep-count chain owned by domain.RetentionPolicy.Resolve.
//
// A missing file falls back to defaults; a malformed file or a negative
// retention value is a fatal configuration error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault(dvrAddrKey, DefaultDVRAddr)
	v.SetDefault(defaultKeepKey, domain.DefaultKeepCount)
	v.SetDefault(pollIntervalKey, int(DefaultPollInterval/time.Minute))
	v.SetDefault("discord.notify_on_cleanup", true)
	v.SetDefault("discord.notify_on_startup", true)
	v.SetDefault("discord.notify_on_error", true)

	if err := v.BindEnv(dvrAddrKey, "DVR_IP"); err != nil {
		return Config{}, fmt.Errorf("bind DVR_IP: %w", err)
	}

	missing := false
	if err := v.ReadInConfig(); err != nil {
		// With an explicit file path viper surfaces a bare fs.PathError
		// instead of ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		missing = true
	}

	overrides, err := readShowOverrides(path, missing)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DVRAddr:      v.GetString(dvrAddrKey),
		PollInterval: time.Duration(v.GetInt(pollIntervalKey)) * time.Minute,
		Retention: domain.RetentionPolicy{
			DefaultKeep:   v.GetInt(defaultKeepKey),
			ShowOverrides: overrides,
		},
		Missing: missing,
	}

	if err := v.UnmarshalKey("discord", &cfg.Discord); err != nil {
		return Config{}, fmt.Errorf("decode discord settings: %w", err)
	}

	if cfg.DVRAddr == "" {
		return Config{}, errors.New("dvr_ip must not be empty")
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll_interval_minutes must be positive, got %s", cfg.PollInterval)
	}
	if err := cfg.Retention.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// readShowOverrides decodes the show_overrides section straight from the
// file. Viper lower-cases every map key, which would silently break the
// exact-match (case-sensitive) override semantics.
func readShowOverrides(path string, missing bool) (map[string]int, error) {
	if missing {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var section struct {
		ShowOverrides map[string]int `json:"show_overrides"`
	}
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil, fmt.Errorf("decode show_overrides in %s: %w", path, err)
	}

	return section.ShowOverrides, nil
}
