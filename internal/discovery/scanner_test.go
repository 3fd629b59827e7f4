// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/addonscan/addonscan/internal/testutil"
	"github.com/addonscan/addonscan/pkg/manifest"
	"github.com/addonscan/addonscan/pkg/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	testutil.MustWriteFile(t, root, rel, content)
}

func newTestScanner(t *testing.T, root string, opts ...Option) *Scanner {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	s, err := New(types.FilesystemPath(root), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func scanTree(t *testing.T, root string, opts ...Option) *Result {
	t.Helper()
	res, err := newTestScanner(t, root, opts...).Scan(t.Context())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return res
}

func byRelativePath(res *Result, rel string) *manifest.Record {
	for _, rec := range res.Records {
		if rec.RelativePath == filepath.FromSlash(rel) {
			return rec
		}
	}
	return nil
}

func TestScan_SingleAddon(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "AddonA/AddonA.txt", "## Title: A\n## APIVersion: 101041\n")

	res := scanTree(t, root)
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if rec.DisplayTitle() != "A" {
		t.Errorf("Title = %q", rec.DisplayTitle())
	}
	if !slices.Equal(rec.APIVersions, []int{101041}) {
		t.Errorf("APIVersions = %v", rec.APIVersions)
	}
	if rec.Bundled {
		t.Error("Bundled = true for a direct child of the root")
	}
	if !rec.OK {
		t.Errorf("OK = false, FailedChecks = %v", rec.FailedChecks)
	}
	if len(rec.Errors) != 0 {
		t.Errorf("Errors = %v", rec.Errors)
	}
	if rec.RelativePath != "AddonA" {
		t.Errorf("RelativePath = %q", rec.RelativePath)
	}
	if rec.ManifestFilename != "AddonA" {
		t.Errorf("ManifestFilename = %q", rec.ManifestFilename)
	}
	if !filepath.IsAbs(string(rec.ManifestPath)) {
		t.Errorf("ManifestPath %q is not absolute", rec.ManifestPath)
	}
}

func TestScan_BundledLibrary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Lib/Lib.txt", "## Title: Lib\n## IsLibrary: true\n")
	writeFile(t, root, "Lib/Sub/Sub.txt", "## Title: Sub\n")

	res := scanTree(t, root)
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}

	lib := byRelativePath(res, "Lib")
	sub := byRelativePath(res, "Lib/Sub")
	if lib == nil || sub == nil {
		t.Fatalf("missing records: lib=%v sub=%v", lib, sub)
	}
	if lib.Bundled || !lib.IsLibrary || !lib.OK {
		t.Errorf("Lib: bundled=%v library=%v ok=%v", lib.Bundled, lib.IsLibrary, lib.OK)
	}
	if !sub.Bundled || !sub.OK {
		t.Errorf("Sub: bundled=%v ok=%v", sub.Bundled, sub.OK)
	}
}

func TestScan_UnknownFieldKeepsRecordValid(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Foo/Foo.txt", "## Title: Foo\n## Foo: bar\n")

	res := scanTree(t, root)
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	rec := res.Records[0]
	want := []string{"unknown metadata field `Foo`: ## Foo: bar"}
	if !slices.Equal(rec.Errors, want) {
		t.Errorf("Errors = %q, want %q", rec.Errors, want)
	}
	if !rec.OK {
		t.Error("OK = false, want true")
	}
}

func TestScan_NameMismatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "AddonY/AddonX.txt", "## Title: X\n")

	var streamed []Diagnostic
	res := scanTree(t, root, WithDiagnosticHandler(func(d Diagnostic) { streamed = append(streamed, d) }))
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if rec.OK {
		t.Error("OK = true, want false")
	}
	if !slices.Equal(rec.FailedChecks, []string{string(CheckFolderNameMatchesManifest)}) {
		t.Errorf("FailedChecks = %v", rec.FailedChecks)
	}

	warnings := res.DiagnosticsAtLeast(SeverityWarning)
	if len(warnings) != 1 || warnings[0].Code != CodeCheckFailed {
		t.Fatalf("warnings = %v", warnings)
	}
	if want := "`X` from `AddonY` will not be loaded: manifest name mismatch"; warnings[0].Message != want {
		t.Errorf("Message = %q, want %q", warnings[0].Message, want)
	}
	if len(streamed) != len(res.Diagnostics) {
		t.Errorf("handler saw %d diagnostics, result has %d", len(streamed), len(res.Diagnostics))
	}
}

func TestScan_CustomValidator(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "AddonA/AddonA.txt", "## Title: A\n")
	writeFile(t, root, "AddonB/AddonB.txt", "## Title: B\n## APIVersion: 101041\n")

	hasAPIVersion := Check{
		Name:   "has-api-version",
		Reason: "no APIVersion line",
		Fn:     func(rec *manifest.Record) bool { return rec.APIVersions != nil },
	}
	res := scanTree(t, root, WithValidator(NewValidator(hasAPIVersion)), WithValidator(nil))

	a, b := byRelativePath(res, "AddonA"), byRelativePath(res, "AddonB")
	if a == nil || b == nil {
		t.Fatalf("records = %v", res.Records)
	}
	if a.OK || !slices.Equal(a.FailedChecks, []string{"has-api-version"}) {
		t.Errorf("AddonA OK = %v FailedChecks = %v", a.OK, a.FailedChecks)
	}
	if !b.OK {
		t.Errorf("AddonB OK = false, FailedChecks = %v", b.FailedChecks)
	}
	if warnings := res.DiagnosticsAtLeast(SeverityWarning); len(warnings) != 1 {
		t.Errorf("warnings = %v, want one for AddonA", warnings)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "does-not-exist")
	res := scanTree(t, root)

	if len(res.Records) != 0 {
		t.Errorf("records = %d, want 0", len(res.Records))
	}
	if !res.RootMissing() {
		t.Fatal("RootMissing() = false")
	}
	if len(res.Diagnostics) != 1 || !errors.Is(res.Diagnostics[0].Cause, ErrScanRootNotFound) {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestScan_RootIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "file.txt", "## Title: x\n")

	_, err := newTestScanner(t, filepath.Join(dir, "file.txt")).Scan(t.Context())
	if !errors.Is(err, ErrScanRootNotDirectory) {
		t.Errorf("Scan() error = %v, want ErrScanRootNotDirectory", err)
	}
}

func TestScan_SkipsHiddenDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".git/Hidden/Hidden.txt", "## Title: Hidden\n")
	writeFile(t, root, "Visible/.cache/Cached.txt", "## Title: Cached\n")
	writeFile(t, root, "Visible/Visible.txt", "## Title: Visible\n")

	res := scanTree(t, root)
	if len(res.Records) != 1 || res.Records[0].DisplayTitle() != "Visible" {
		t.Errorf("records = %v", res.Records)
	}
}

func TestScan_SkipsNonManifests(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "AddonA/AddonA.txt", "## Title: A\n")
	writeFile(t, root, "AddonA/readme.txt", "just some notes\n")
	writeFile(t, root, "AddonA/binary.addon", "\xff\xfe\x00garbage")
	writeFile(t, root, "AddonA/AddonA.lua", "## Title: not a candidate\n")
	writeFile(t, root, "AddonA/Upper.TXT", "## Title: wrong case\n")

	res := scanTree(t, root)
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}

	var notManifest []Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == CodeNotAManifest {
			notManifest = append(notManifest, d)
		}
	}
	if len(notManifest) != 1 || filepath.Base(notManifest[0].Path) != "readme.txt" {
		t.Errorf("not_a_manifest diagnostics = %v", notManifest)
	}
	if notManifest[0].Severity != SeverityInfo {
		t.Errorf("Severity = %q, want info", notManifest[0].Severity)
	}
}

func TestScan_Exclude(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Keep/Keep.txt", "## Title: Keep\n")
	writeFile(t, root, "Drop/Drop.txt", "## Title: Drop\n")
	writeFile(t, root, "Keep/Libs/Nested/Nested.txt", "## Title: Nested\n")

	res := scanTree(t, root, WithExclude("Drop", "**/Libs/**"))
	if len(res.Records) != 1 || res.Records[0].DisplayTitle() != "Keep" {
		titles := make([]string, 0, len(res.Records))
		for _, r := range res.Records {
			titles = append(titles, r.DisplayTitle())
		}
		t.Errorf("titles = %v, want [Keep]", titles)
	}
}

func TestNew_InvalidExclude(t *testing.T) {
	t.Parallel()

	_, err := New(types.FilesystemPath(t.TempDir()), WithExclude("[unterminated"))
	if !errors.Is(err, ErrInvalidExcludePattern) {
		t.Errorf("New() error = %v, want ErrInvalidExcludePattern", err)
	}
}

func TestNew_EmptyRoot(t *testing.T) {
	t.Parallel()

	if _, err := New(""); !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Errorf("New(\"\") error = %v, want ErrInvalidFilesystemPath", err)
	}
}

func TestScan_StableOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
		writeFile(t, root, name+"/"+name+".txt", "## Title: "+name+"\n")
	}

	first := scanTree(t, root)
	second := scanTree(t, root)

	var got []string
	for i, rec := range first.Records {
		got = append(got, rec.RelativePath)
		if second.Records[i].RelativePath != rec.RelativePath {
			t.Errorf("order differs at %d: %q vs %q", i, rec.RelativePath, second.Records[i].RelativePath)
		}
	}
	if !slices.Equal(got, []string{"Alpha", "Bravo", "Charlie"}) {
		t.Errorf("order = %v", got)
	}
}

func TestScan_ContextCancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "AddonA/AddonA.txt", "## Title: A\n")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	res, err := newTestScanner(t, root).Scan(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Error("partial result returned with error")
	}
}

func TestScan_UnreadableSubdirectory(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced here")
	}

	root := t.TempDir()
	writeFile(t, root, "AddonA/AddonA.txt", "## Title: A\n")
	locked := filepath.Join(root, "Locked")
	writeFile(t, root, "Locked/Locked.txt", "## Title: Locked\n")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	res := scanTree(t, root)
	if len(res.Records) != 1 {
		t.Errorf("records = %d, want 1", len(res.Records))
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == CodePathSkipped {
			found = true
		}
	}
	if !found {
		t.Errorf("no path_skipped diagnostic in %v", res.Diagnostics)
	}
}

func TestAll_StreamsValidatedRecords(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "AddonA/AddonA.txt", "## Title: A\n")
	writeFile(t, root, "AddonY/AddonX.txt", "## Title: X\n")

	s := newTestScanner(t, root)
	var ok, failed int
	for rec, err := range s.All(t.Context()) {
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if rec.OK {
			ok++
		} else {
			failed++
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("ok=%d failed=%d, want 1 and 1", ok, failed)
	}
}

func TestAll_EarlyBreak(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"A", "B", "C"} {
		writeFile(t, root, name+"/"+name+".txt", "## Title: "+name+"\n")
	}

	seen := 0
	for range newTestScanner(t, root).All(t.Context()) {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("seen = %d, want 1", seen)
	}
}

func TestAll_TerminalError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var calls int
	for rec, err := range newTestScanner(t, t.TempDir()).All(ctx) {
		calls++
		if rec != nil || !errors.Is(err, context.Canceled) {
			t.Errorf("got (%v, %v), want (nil, context.Canceled)", rec, err)
		}
	}
	if calls != 1 {
		t.Errorf("yield calls = %d, want 1", calls)
	}
}

func TestScanner_Root(t *testing.T) {
	t.Parallel()

	root := types.FilesystemPath(t.TempDir())
	if got := newTestScanner(t, string(root)).Root(); got != root {
		t.Errorf("Root() = %q, want %q", got, root)
	}
}
