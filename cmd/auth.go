package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the KMDB api token",
	}

	cmd.AddCommand(newAuthSetTokenCmd(app), newAuthRemoveCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthSetTokenCmd(app *app) *cobra.Command {
	var token string
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store the api token for the current profile",
		Long:  "Store the api token for the current profile. The token is read from --token or, when omitted, from the first line of stdin. It is checked against the server unless --no-verify is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("token") {
				read, err := readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read token from stdin: %w", err)
				}
				token = read
			}

			var verify func(context.Context, string) error
			if !noVerify {
				client, err := app.api()
				if err != nil {
					return err
				}
				verify = func(ctx context.Context, _ string) error {
					_, err := client.ListProjects(ctx)
					return err
				}
			}

			if err := app.auth.SetToken(cmd.Context(), token, verify); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "token stored for profile %s\n", app.auth.Profile())
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Api token (read from stdin when omitted)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Store the token without checking it against the server")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the api token of the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.auth.RemoveToken(cmd.Context())
		},
	}
}

func newAuthStatusCmd(app *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an api token is configured",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := app.auth.Status(cmd.Context())

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(status)
			}

			out := cmd.OutOrStdout()
			server := app.settings.Server.URL
			if server == "" {
				server = "(not configured)"
			}
			if _, err := fmt.Fprintf(out, "server: %s\nprofile: %s\n", server, status.Profile); err != nil {
				return err
			}
			if !status.Configured {
				_, err := fmt.Fprintln(out, "token: not configured")
				return err
			}
			_, err := fmt.Fprintf(out, "token: %s\n", status.Masked)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON output")

	return cmd
}

// readLine reads up to the first newline one byte at a time so the rest of
// r stays available to later readers.
func readLine(r io.Reader) (string, error) {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(line.String(), "\r"), nil
}
