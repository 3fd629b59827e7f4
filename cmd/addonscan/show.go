// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/pkg/manifest"
)

// errAddonNotFound is returned when no record lives in the requested folder.
var errAddonNotFound = errors.New("add-on not found")

// showFlagValues holds the flags of `addonscan show`.
type showFlagValues struct {
	scan   scanFlagValues
	format string
}

func newShowCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &showFlagValues{}

	showCmd := &cobra.Command{
		Use:   "show <folder>",
		Short: "Show the manifest of one add-on",
		Long: `Show every metadata field of the add-on in <folder>, given relative to
the AddOns folder. Bundled add-ons use their full path, for example
"LibAddonMenu-2.0/LibStub".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.report(runShow(cmd.Context(), app, rootFlags, flags, args[0]))
		},
	}

	flags.scan.bind(showCmd)
	showCmd.Flags().StringVarP(&flags.format, "format", "f", string(formatText), "output format: text, json, yaml or toml")

	return showCmd
}

func runShow(ctx context.Context, app *App, rootFlags *rootFlagValues, flags *showFlagValues, folder string) error {
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

	matches := findByFolder(result.Records, folder)
	if len(matches) == 0 {
		return newServiceError(fmt.Errorf("%w: %s", errAddonNotFound, folder), issue.AddonNotFoundId)
	}

	if format != formatText {
		return writeStructured(app.stdout, format, showOutput{Records: matches})
	}
	for i, rec := range matches {
		if i > 0 {
			fmt.Fprintln(app.stdout)
		}
		writeRecordDetail(app.stdout, rec)
	}
	return nil
}

// findByFolder returns the records whose relative path equals folder.
// Separators and case are ignored since the game runs on Windows.
func findByFolder(records []*manifest.Record, folder string) []*manifest.Record {
	want := strings.Trim(filepath.ToSlash(folder), "/")
	var out []*manifest.Record
	for _, rec := range records {
		if strings.EqualFold(filepath.ToSlash(rec.RelativePath), want) {
			out = append(out, rec)
		}
	}
	return out
}

func writeRecordDetail(w io.Writer, rec *manifest.Record) {
	fmt.Fprintln(w, TitleStyle.Render(displayTitle(rec)))

	field := func(name, value string) {
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(fmt.Sprintf("%-20s", name+":")), value)
	}
	list := func(name string, values []string) {
		if len(values) == 0 {
			field(name, SubtitleStyle.Render("(none)"))
			return
		}
		field(name, strings.Join(values, ", "))
	}
	optional := func(name string, value *string) {
		if value == nil {
			field(name, SubtitleStyle.Render("(not set)"))
			return
		}
		field(name, *value)
	}

	field("Manifest", rec.ManifestPath.String())
	field("Folder", rec.RelativePath)
	field("Bundled", strconv.FormatBool(rec.Bundled))
	field("Library", strconv.FormatBool(rec.IsLibrary))
	field("Status", statusLabel(rec))
	optional("Author", rec.Author)
	optional("Version", rec.Version)
	optional("AddOnVersion", rec.AddonVersion)
	if rec.IntVersion != nil {
		field("IntVersion", strconv.Itoa(*rec.IntVersion))
	}
	apiVersions := make([]string, 0, len(rec.APIVersions))
	for _, v := range rec.APIVersions {
		apiVersions = append(apiVersions, strconv.Itoa(v))
	}
	list("APIVersion", apiVersions)
	list("DependsOn", rec.DependsOn)
	list("PCDependsOn", rec.PCDependsOn)
	list("ConsoleDependsOn", rec.ConsoleDependsOn)
	list("OptionalDependsOn", rec.OptionalDependsOn)
	list("SavedVariables", rec.SavedVariables)
	optional("Description", rec.Description)

	for _, check := range rec.FailedChecks {
		fmt.Fprintf(w, "  %s %s\n", ErrorStyle.Render("failed:"), check)
	}
	writeRecordErrors(w, rec)
}
