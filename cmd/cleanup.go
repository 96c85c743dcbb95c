package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dvrsweep/internal/application"
	"github.com/bnema/dvrsweep/internal/domain"
)

func newCleanupCmd(app *app) *cobra.Command {
	var show string
	var keep int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Run one cleanup pass and exit",
		Long:  "Runs a single fetch-plan-execute pass over all shows, or only the shows matching --show, then exits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := application.PassOptions{ShowFilter: show}
			if cmd.Flags().Changed("keep") {
				if keep < 0 {
					return fmt.Errorf("--keep %d: %w", keep, domain.ErrInvalidRetention)
				}
				opts.RunOverride = &keep
			}

			summary, err := app.service.RunPass(cmd.Context(), opts)
			if err != nil {
				if errors.Is(err, domain.ErrNoShowMatch) {
					fmt.Fprintf(cmd.ErrOrStderr(), "No show found matching %q.\n", show)
					printAvailableShows(cmd, app)
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Cleanup complete: %d considered, %d attempted, %d deleted, %d failed\n",
				summary.Considered, summary.Attempted, summary.Succeeded, summary.Failed)
			return err
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "Only clean shows whose title contains this substring (case-insensitive)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep this many episodes per show, overriding the configured retention")

	return cmd
}

func printAvailableShows(cmd *cobra.Command, app *app) {
	groups, err := app.service.Shows(cmd.Context())
	if err != nil {
		return
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Available shows:")
	for _, group := range groups {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", group.Title)
	}
}
