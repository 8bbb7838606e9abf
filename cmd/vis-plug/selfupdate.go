package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

func newSelfUpdateCommand() *cobra.Command {
	var (
		sourceURL  string
		targetPath string
	)

	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Replace this binary with a fresh copy from the configured URL",
		Long:  "Fetch a replacement copy of vis-plug from the configured self_update_url\nand overwrite the running binary in place.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			url := sourceURL
			if url == "" {
				url = app.cfg.SelfUpdateURL
			}

			target := targetPath
			if target == "" {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("cannot locate running binary: %w", err)
				}
				target = exe
			}

			updater := plugin.NewSelfUpdater(nil, url, target)
			if err := updater.Run(cmd.Context()); err != nil {
				return err
			}

			cmd.Printf("replaced %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceURL, "url", "", "artifact URL (default from config self_update_url)")
	cmd.Flags().StringVar(&targetPath, "target", "", "path to overwrite (default: the running binary)")
	return cmd
}
