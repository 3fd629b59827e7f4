// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addonscan/addonscan/internal/config"
	"github.com/addonscan/addonscan/internal/discovery"
	"github.com/addonscan/addonscan/internal/issue"
)

type (
	// scanFlagValues holds the flags that choose what to scan.
	scanFlagValues struct {
		dir     string
		variant string
	}

	// scanSession is a resolved scan: the effective config and the request
	// built from it. It is reused by every rescan in watch mode.
	scanSession struct {
		cfg     *config.Config
		request ScanRequest
	}
)

func (f *scanFlagValues) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "scan this folder instead of the game's AddOns folder")
	cmd.Flags().StringVar(&f.variant, "variant", "", "game client to scan: live or pts (default from config)")
}

// prepareScan loads configuration and resolves the scan root.
func (app *App) prepareScan(ctx context.Context, rootFlags *rootFlagValues, flags *scanFlagValues) (*scanSession, error) {
	cfg, err := app.loadConfig(ctx, rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	app.colorScheme = cfg.UI.ColorScheme
	if cfg.UI.Verbose {
		app.setVerbose()
	}

	variant := config.GameVariant(flags.variant)
	if variant != "" {
		if err := variant.Validate(); err != nil {
			return nil, usageError(newServiceError(err, issue.InvalidGameVariantId))
		}
	}

	root, err := config.ScanRoot(cfg, flags.dir, variant)
	if err != nil {
		return nil, newServiceError(err, issue.ScanRootNotFoundId)
	}

	return &scanSession{
		cfg: cfg,
		request: ScanRequest{
			Root:    root,
			Exclude: cfg.Exclude,
			Logger:  app.scanLogger(),
		},
	}, nil
}

// runScan scans the session root and renders warnings and errors to stderr.
// Info diagnostics are only rendered in verbose mode. A missing root is
// returned as an error so the command exits non-zero.
func (app *App) runScan(ctx context.Context, session *scanSession) (*discovery.Result, error) {
	result, err := app.Scans.Scan(ctx, session.request)
	if err != nil {
		return nil, newServiceError(err, issue.ScanFailedId)
	}

	if result.RootMissing() {
		return nil, newServiceError(
			fmt.Errorf("%w: %s", discovery.ErrScanRootNotFound, session.request.Root),
			issue.ScanRootNotFoundId,
		)
	}

	threshold := discovery.SeverityWarning
	if app.verbose() {
		threshold = discovery.SeverityInfo
	}
	app.Diagnostics.Render(ctx, result.DiagnosticsAtLeast(threshold), app.stderr)

	return result, nil
}
