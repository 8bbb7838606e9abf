package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

func newInstallCommand() *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Clone plugins that are not yet installed and apply pinned refs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			_, err = app.manager.InstallAll(cmd.Context(), silent)
			return err
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, "suppress per-plugin messages (summary is still printed)")
	return cmd
}

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Pull installed plugins and re-apply pinned refs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			_, err = app.manager.UpdateAll(cmd.Context())
			return err
		},
	}
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a plugin's working tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			name := args[0]
			removed, err := app.manager.Registry().Remove(name)
			if err != nil {
				if errors.Is(err, plugin.ErrPluginNotFound) {
					cmd.Printf("plugin not found: %s\n", name)
					return nil
				}
				return err
			}

			if removed {
				cmd.Printf("removed %s\n", name)
			} else {
				cmd.Printf("%s is not installed, nothing removed\n", name)
			}
			return nil
		},
	}
}

func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete every plugin's working tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			removed, err := app.manager.Registry().RemoveAll()
			if err != nil {
				cmd.Printf("removed %d plugins, some removals failed\n", removed)
				return err
			}
			cmd.Printf("removed %d plugins\n", removed)
			return nil
		},
	}
}

func newCheckoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <name> <ref>",
		Short: "Re-pin a plugin to a ref and check it out immediately",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			name, ref := args[0], args[1]
			if err := app.manager.Checkout(cmd.Context(), name, ref); err != nil {
				if errors.Is(err, plugin.ErrPluginNotFound) {
					cmd.Printf("plugin not found: %s\n", name)
					return nil
				}
				return fmt.Errorf("checkout %s at %s: %w", name, ref, err)
			}
			return nil
		},
	}
}
