package cmd

import (
	"fmt"

	"github.com/kmdb/kmdb-cli/internal/adapters/render/listing"
	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCredentialsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credentials",
		Aliases: []string{"creds"},
		Short:   "Browse asset credentials",
	}

	var assetRef string
	list := &cobra.Command{
		Use:   "list",
		Short: "List credentials, optionally for one asset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.catalogService()
			if err != nil {
				return err
			}

			var assetID domain.AssetID
			if assetRef != "" {
				asset, err := catalog.ResolveAsset(cmd.Context(), assetRef)
				if err != nil {
					return err
				}
				assetID = asset.ID
			}

			credentials, err := catalog.Credentials(cmd.Context(), assetID)
			if err != nil {
				return err
			}

			rendered, err := listing.RenderCredentials(credentials)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	list.Flags().StringVar(&assetRef, "asset", "", "Asset id, name or IP")

	cmd.AddCommand(list)
	return cmd
}

func newProjectsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.catalogService()
			if err != nil {
				return err
			}

			projects, err := catalog.Projects(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := listing.RenderProjects(projects)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	})

	return cmd
}

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously opened connections",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recent connections, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.history.List(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := listing.RenderHistory(entries, app.clock.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	})

	return cmd
}
