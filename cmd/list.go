package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dvrsweep/internal/adapters/render/shows"
	"github.com/bnema/dvrsweep/internal/domain"
)

type showListing struct {
	Title      string `json:"title"`
	Recordings int    `json:"recordings"`
}

func newListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shows and their recording counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var groups []domain.ShowGroup

			fetch := func(ctx context.Context) error {
				var err error
				groups, err = app.service.Shows(ctx)
				return err
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}

				listings := make([]showListing, 0, len(groups))
				for _, group := range groups {
					listings = append(listings, showListing{Title: group.Title, Recordings: group.Count()})
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(listings)
			}

			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching recordings...", fetch); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), shows.Render(groups))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
