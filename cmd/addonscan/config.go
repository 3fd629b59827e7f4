// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addonscan/addonscan/internal/config"
	"github.com/addonscan/addonscan/internal/issue"
)

// newConfigCommand creates the `addonscan config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage addonscan configuration",
		Long: `Manage addonscan configuration.

Configuration is stored in:
  - Linux: ~/.config/addonscan/config.cue
  - macOS: ~/Library/Application Support/addonscan/config.cue
  - Windows: %APPDATA%\addonscan\config.cue

Every setting can be overridden with an ADDONSCAN_* environment variable,
for example ADDONSCAN_GAME_VARIANT=pts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.report(showConfig(cmd.Context(), app, rootFlags))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration and AddOns folder paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(cmd.Context(), app, rootFlags)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, rootFlags *rootFlagValues) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return newServiceError(err, issue.ConfigLoadFailedId)
	}

	source := loaded.Path
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(app.stdout, "// source: %s\n", source)
	fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
	return nil
}

func initConfig(app *App) error {
	cfgPath, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(ctx context.Context, app *App, rootFlags *rootFlagValues) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render("Config directory:"), cfgDir)
	fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render("Config file:"), cfgPath)

	cfg, err := app.loadConfig(ctx, rootFlags.configPath)
	if err != nil {
		return app.report(err)
	}
	root, err := config.ScanRoot(cfg, "", "")
	if err != nil {
		fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render("AddOns folder:"), SubtitleStyle.Render("(unknown: "+err.Error()+")"))
		return nil
	}
	fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render("AddOns folder:"), root)
	return nil
}
