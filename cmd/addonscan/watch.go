// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/internal/watch"
)

// runListWatch renders once, then re-renders after every debounced batch of
// manifest changes under the scan root. It blocks until ctx is cancelled.
func runListWatch(ctx context.Context, app *App, session *scanSession, render func(context.Context) error) error {
	if err := render(ctx); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Patterns:    watch.ManifestPatterns,
		Ignore:      session.cfg.Exclude,
		Debounce:    session.cfg.Watch.Debounce,
		ClearScreen: session.cfg.Watch.ClearScreen,
		BaseDir:     session.request.Root,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stderr, "%s Detected %d change(s), rescanning...\n", CmdStyle.Render("→"), len(changed))
			if err := render(ctx); err != nil {
				// Keep watching; the user may fix the folder and save again.
				fmt.Fprintf(app.stderr, "%s Rescan failed: %s\n", WarningStyle.Render("!"), formatErrorForDisplay(err, app.verbose()))
			}
			return nil
		},
		Stdout: app.stdout,
		Stderr: app.stderr,
	})
	if err != nil {
		return newServiceError(issue.NewErrorContext().
			WithOperation("watch add-ons").
			WithResource(session.request.Root).
			WithSuggestion("Check the exclude patterns in your config file").
			Wrap(err).
			BuildError(), issue.WatchFailedId)
	}

	fmt.Fprintf(app.stderr, "\n%s Watching %s for changes (Ctrl+C to stop)...\n\n", CmdStyle.Render("→"), session.request.Root)
	return w.Run(ctx)
}
