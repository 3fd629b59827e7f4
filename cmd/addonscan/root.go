// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
}

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "addonscan",
		Short: "Inspect Elder Scrolls Online add-ons",
		Long: TitleStyle.Render("addonscan") + SubtitleStyle.Render(" - Inspect Elder Scrolls Online add-ons") + `

addonscan reads the manifest of every add-on in your AddOns folder and
tells you which ones the game will refuse to load.

` + SubtitleStyle.Render("Examples:") + `
  addonscan list                     List add-ons of the live client
  addonscan list --view libraries    List libraries only
  addonscan list --search @author    Filter by author
  addonscan check                    Report add-ons that will not load
  addonscan show LibAddonMenu-2.0    Show one add-on in detail
  addonscan config show              Show current configuration`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.verbose {
				app.setVerbose()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/addonscan/config.cue)")

	rootCmd.AddCommand(
		newListCommand(app, flags),
		newCheckCommand(app, flags),
		newShowCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the App and runs the command tree. It is called by main.main.
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}
	slog.SetDefault(slog.New(app.logger))

	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// usageError marks err as a bad invocation.
func usageError(err error) error {
	return &ExitError{Code: types.ExitUsage, Err: err}
}
