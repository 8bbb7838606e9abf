package main

import (
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured plugins and whether they are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			statuses := app.manager.List()
			return renderStatuses(cmd.OutOrStdout(), statuses, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format (table or yaml)")
	return cmd
}

func newOutdatedCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "outdated",
		Short: "Compare installed plugins against their remotes",
		Long:  "Compare each installed plugin's local HEAD against the remote HEAD.\nPlugins that are not installed are reported without any network query.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			statuses := app.manager.Outdated(cmd.Context())
			return renderStatuses(cmd.OutOrStdout(), statuses, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format (table or yaml)")
	return cmd
}
