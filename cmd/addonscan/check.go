// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/internal/view"
	"github.com/addonscan/addonscan/pkg/manifest"
	"github.com/addonscan/addonscan/pkg/types"
)

// checkFlagValues holds the flags of `addonscan check`.
type checkFlagValues struct {
	scan   scanFlagValues
	format string
}

func newCheckCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &checkFlagValues{}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report add-ons the game will not load",
		Long: `Scan the AddOns folder and report every add-on that fails validation,
together with the manifest problems found while reading it.

Exits with status 1 when at least one add-on will not load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.report(runCheck(cmd.Context(), app, rootFlags, flags))
		},
	}

	flags.scan.bind(checkCmd)
	checkCmd.Flags().StringVarP(&flags.format, "format", "f", string(formatText), "output format: text, json, yaml or toml")

	return checkCmd
}

func runCheck(ctx context.Context, app *App, rootFlags *rootFlagValues, flags *checkFlagValues) error {
	format := outputFormat(flags.format)
	if err := format.Validate(); err != nil {
		return usageError(err)
	}

	session, err := app.prepareScan(ctx, rootFlags, &flags.scan)
	if err != nil {
		return err
	}

	result, err := app.runScan(ctx, session)
	if err != nil {
		return err
	}

	invalid := view.Filter(result.Records, view.Errors, view.ParseQuery(""))

	if format != formatText {
		if err := writeStructured(app.stdout, format, checkOutput{
			Root:    result.Root,
			Total:   len(result.Records),
			Invalid: invalid,
		}); err != nil {
			return err
		}
	} else {
		writeCheckReport(app.stdout, result.Records, invalid)
	}

	if len(invalid) == 0 {
		return nil
	}
	return &ExitError{
		Code: types.ExitFailure,
		Err: newServiceError(
			fmt.Errorf("%d of %d add-ons will not be loaded", len(invalid), len(result.Records)),
			issue.InvalidAddonsId,
		),
	}
}

// writeCheckReport lists invalid records first, then valid records that
// still carry manifest problems, then a summary line.
func writeCheckReport(w io.Writer, records, invalid []*manifest.Record) {
	for _, rec := range invalid {
		fmt.Fprintf(w, "%s %s %s\n", ErrorStyle.Render("✗"), displayTitle(rec), SubtitleStyle.Render("("+rec.RelativePath+")"))
		for _, check := range rec.FailedChecks {
			fmt.Fprintf(w, "    %s %s (manifest %q, folder %q)\n",
				ErrorStyle.Render("failed:"), check, rec.ManifestFilename, rec.FolderName())
		}
		writeRecordErrors(w, rec)
	}

	for _, rec := range records {
		if !rec.OK || len(rec.Errors) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", WarningStyle.Render("!"), displayTitle(rec), SubtitleStyle.Render("("+rec.RelativePath+")"))
		writeRecordErrors(w, rec)
	}

	if len(invalid) == 0 {
		fmt.Fprintf(w, "%s All %d add-ons will be loaded\n", SuccessStyle.Render("✓"), len(records))
		return
	}
	fmt.Fprintf(w, "%s %d of %d add-ons will not be loaded\n", ErrorStyle.Render("✗"), len(invalid), len(records))
}

func writeRecordErrors(w io.Writer, rec *manifest.Record) {
	for _, msg := range rec.Errors {
		fmt.Fprintf(w, "    %s %s\n", WarningStyle.Render("-"), msg)
	}
}
