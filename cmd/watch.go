package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/dvrsweep/internal/application"
	"github.com/bnema/dvrsweep/internal/config"
	"github.com/bnema/dvrsweep/internal/domain"
	"github.com/bnema/dvrsweep/internal/logging"
	"github.com/bnema/dvrsweep/internal/ports"
)

func newWatchCmd(app *app) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously enforce retention at the configured interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var override *int
			if cmd.Flags().Changed("keep") {
				if keep < 0 {
					return fmt.Errorf("--keep %d: %w", keep, domain.ErrInvalidRetention)
				}
				override = &keep
			}
			return runWatch(cmd, app, override)
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "Keep this many episodes per show, overriding the configured retention")

	return cmd
}

// runWatch is also the root command's default action.
func runWatch(cmd *cobra.Command, app *app, override *int) error {
	logger := logging.WithComponent("watch")

	logger.Info().
		Str("dvr", app.cfg.DVRAddr).
		Dur("interval", app.cfg.PollInterval).
		Msg("starting continuous cleanup")

	if err := app.notifier.Send(cmd.Context(), ports.NoticeStartup, startupNotice(app.cfg, override)); err != nil {
		logger.Debug().Err(err).Msg("startup notification failed")
	}

	scheduler := application.NewScheduler(
		app.service,
		app.cfg.PollInterval,
		application.PassOptions{RunOverride: override},
		logger,
	)

	return scheduler.Run(cmd.Context())
}

func startupNotice(cfg config.Config, override *int) string {
	var b strings.Builder
	b.WriteString("dvrsweep started\nMode: continuous monitoring\n")

	if override != nil {
		fmt.Fprintf(&b, "Keeping: %d episodes per show (override)\n", *override)
	} else {
		fmt.Fprintf(&b, "Default: %d episodes per show\n", cfg.Retention.DefaultKeep)
	}
	fmt.Fprintf(&b, "Poll interval: %s", cfg.PollInterval)

	if override == nil && len(cfg.Retention.ShowOverrides) > 0 {
		titles := make([]string, 0, len(cfg.Retention.ShowOverrides))
		for title := range cfg.Retention.ShowOverrides {
			titles = append(titles, title)
		}
		sort.Strings(titles)

		b.WriteString("\nShow overrides:")
		for _, title := range titles {
			fmt.Fprintf(&b, "\n- %s: %d", title, cfg.Retention.ShowOverrides[title])
		}
	}

	return b.String()
}
