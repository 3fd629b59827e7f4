// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/addonscan/addonscan/internal/discovery"
	"github.com/addonscan/addonscan/internal/view"
	"github.com/addonscan/addonscan/pkg/manifest"
)

// listFlagValues holds the flags of `addonscan list`.
type listFlagValues struct {
	scan   scanFlagValues
	view   string
	search string
	format string
	watch  bool
}

func newListCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &listFlagValues{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed add-ons",
		Long: `List the add-ons found in the AddOns folder.

Search terms match the title. Prefix a term with @ to match the author,
with / to match the folder of bundled add-ons, and with ~ to exclude
matches. All terms must match.`,
		Example: `  addonscan list --view all
  addonscan list --search "map ~lib"
  addonscan list --variant pts --format json
  addonscan list --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.report(runList(cmd.Context(), app, rootFlags, flags))
		},
	}

	flags.scan.bind(listCmd)
	listCmd.Flags().StringVar(&flags.view, "view", string(view.Addons), "records to show: addons, libraries, errors or all")
	listCmd.Flags().StringVarP(&flags.search, "search", "s", "", "filter by title, @author or /folder; prefix a term with ~ to exclude it")
	listCmd.Flags().StringVarP(&flags.format, "format", "f", string(formatText), "output format: text, json, yaml or toml")
	listCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rescan whenever a manifest changes")

	return listCmd
}

func runList(ctx context.Context, app *App, rootFlags *rootFlagValues, flags *listFlagValues) error {
	v := view.View(flags.view)
	if err := v.Validate(); err != nil {
		return usageError(err)
	}
	format := outputFormat(flags.format)
	if err := format.Validate(); err != nil {
		return usageError(err)
	}

	session, err := app.prepareScan(ctx, rootFlags, &flags.scan)
	if err != nil {
		return err
	}

	q := view.ParseQuery(flags.search)
	render := func(ctx context.Context) error {
		result, err := app.runScan(ctx, session)
		if err != nil {
			return err
		}
		return writeList(app.stdout, format, result, v, q)
	}

	if flags.watch {
		return runListWatch(ctx, app, session, render)
	}
	return render(ctx)
}

// writeList prints the records of one view followed by the per-view counts.
func writeList(w io.Writer, format outputFormat, result *discovery.Result, v view.View, q view.Query) error {
	records := view.Filter(result.Records, v, q)
	counts := view.Counts(result.Records, q)

	if format != formatText {
		return writeStructured(w, format, listOutput{
			Root:        result.Root,
			View:        v,
			Search:      q.String(),
			Counts:      countsByName(counts),
			Records:     records,
			Diagnostics: result.Diagnostics,
		})
	}

	if len(records) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No add-ons match."))
	} else {
		fmt.Fprintln(w, recordTable(records))
	}
	fmt.Fprintln(w, countsLine(counts, v))
	return nil
}

// recordTable renders records as a bordered table.
func recordTable(records []*manifest.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("TITLE", "VERSION", "AUTHOR", "FOLDER", "STATUS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	for _, rec := range records {
		t.Row(displayTitle(rec), displayVersion(rec), rec.DisplayAuthor(), rec.RelativePath, statusLabel(rec))
	}

	return t.Render()
}

// countsLine renders "addons 3  libraries 2  errors 1  all 6" with the
// current view emphasized.
func countsLine(counts map[view.View]int, current view.View) string {
	parts := make([]string, 0, len(view.Views()))
	for _, v := range view.Views() {
		label := fmt.Sprintf("%s %d", v, counts[v])
		if v == current {
			parts = append(parts, TitleStyle.Render(label))
			continue
		}
		parts = append(parts, SubtitleStyle.Render(label))
	}
	return strings.Join(parts, "  ")
}

// displayTitle falls back to the manifest file name for untitled records.
func displayTitle(rec *manifest.Record) string {
	if title := rec.DisplayTitle(); title != "" {
		return title
	}
	return rec.ManifestFilename
}

func displayVersion(rec *manifest.Record) string {
	switch {
	case rec.Version != nil:
		return *rec.Version
	case rec.AddonVersion != nil:
		return *rec.AddonVersion
	default:
		return ""
	}
}

func statusLabel(rec *manifest.Record) string {
	switch {
	case !rec.OK:
		return ErrorStyle.Render("will not load")
	case len(rec.Errors) > 0:
		return WarningStyle.Render(fmt.Sprintf("%d problem(s)", len(rec.Errors)))
	case rec.IsLibrary:
		return CmdStyle.Render("library")
	default:
		return SuccessStyle.Render("ok")
	}
}
