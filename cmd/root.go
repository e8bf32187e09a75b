package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kmdb",
		Short:         "KMDB console client: browse assets and open multiplexed WebSSH sessions",
		Long:          "kmdb talks to a KMDB server: it lists assets, projects and credentials, manages favorites, and opens several WebSSH terminal sessions in one terminal window, switched with a prefix key.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newAssetsCmd(app),
		newCredentialsCmd(app),
		newProjectsCmd(app),
		newHistoryCmd(app),
		newSSHCmd(app),
	)

	return rootCmd
}
