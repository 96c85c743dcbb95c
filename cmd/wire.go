package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/dvrsweep/internal/adapters/hdhr"
	"github.com/bnema/dvrsweep/internal/adapters/notify/discord"
	"github.com/bnema/dvrsweep/internal/application"
	"github.com/bnema/dvrsweep/internal/config"
	"github.com/bnema/dvrsweep/internal/logging"
	"github.com/bnema/dvrsweep/internal/ports"
)

type app struct {
	configPath string
	debug      bool

	cfg      config.Config
	notifier ports.Notifier
	service  *application.CleanupService
}

// setup loads configuration and wires the adapters. Runs once per
// invocation, before any command that touches the device.
func (a *app) setup() error {
	logging.Configure(logging.Config{Debug: a.debug})

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Missing {
		base := logging.Base()
		base.Warn().
			Str("path", a.configPath).
			Msg("config file not found, using defaults")
	}

	notifier := discord.New(
		os.Getenv("DISCORD_WEBHOOK_URL"),
		cfg.Discord,
		ports.SystemClock{},
		logging.WithComponent("discord"),
	)
	dvr := hdhr.NewClient(cfg.DVRAddr, notifier, logging.WithComponent("hdhr"))

	a.cfg = cfg
	a.notifier = notifier
	a.service = application.NewCleanupService(dvr, dvr, notifier, cfg.Retention, logging.WithComponent("cleanup"))

	return nil
}
