package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kmdb/kmdb-cli/internal/adapters/render/listing"
	"github.com/kmdb/kmdb-cli/internal/application"
	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAssetsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "Browse assets and manage favorites",
	}

	cmd.AddCommand(newAssetsListCmd(app), newAssetsFavoriteCmd(app))

	return cmd
}

func newAssetsListCmd(app *app) *cobra.Command {
	var query application.AssetQuery
	var projectID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets, favorites first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.catalogService()
			if err != nil {
				return err
			}

			query.ProjectID = domain.ProjectID(projectID)
			assets, err := catalog.Assets(cmd.Context(), query)
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(assets)
			}

			rendered, err := listing.RenderAssets(assets)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&query.FavoritesOnly, "favorites", false, "Only list favorite assets")
	cmd.Flags().StringVar(&projectID, "project", "", "Only list assets of this project id")
	cmd.Flags().StringVar(&query.Filter, "filter", "", "Filter on id, name or IP")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON output")

	return cmd
}

func newAssetsFavoriteCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Add or remove favorite assets",
	}

	cmd.AddCommand(
		newFavoriteToggleCmd(app, "add", "Mark an asset as favorite", true),
		newFavoriteToggleCmd(app, "remove", "Unmark a favorite asset", false),
	)

	return cmd
}

func newFavoriteToggleCmd(app *app, use string, short string, favorite bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <asset>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.catalogService()
			if err != nil {
				return err
			}

			asset, err := catalog.ResolveAsset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := catalog.SetFavorite(cmd.Context(), asset.ID, favorite); err != nil {
				return err
			}

			verb := "added to"
			if !favorite {
				verb = "removed from"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %s favorites\n", asset.Label(), asset.ID, verb)
			return err
		},
	}
}
