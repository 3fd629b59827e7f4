// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/internal/testutil"
	"github.com/addonscan/addonscan/pkg/types"
)

func TestCheckCommand_InvalidAddons(t *testing.T) {
	t.Parallel()

	root := writeAddonsTree(t)
	testutil.MustWriteManifest(t, root, "Noisy", "Noisy",
		"## Title: Noisy",
		"## Foo: bar",
	)

	app := newTestApp(t, nil)
	err := app.run(t, "check", "--dir", root)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != types.ExitFailure {
		t.Errorf("exit code = %d, want %d", exitErr.Code, types.ExitFailure)
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError in chain, got %T", err)
	}
	if svcErr.IssueID != issue.InvalidAddonsId {
		t.Errorf("IssueID = %d, want %d", svcErr.IssueID, issue.InvalidAddonsId)
	}

	out := app.out()
	for _, want := range []string{
		"✗ Broken Addon (Broken)",
		`failed: folder-name-matches-manifest (manifest "Renamed", folder "Broken")`,
		"! Noisy (Noisy)",
		"unknown metadata field `Foo`",
		"1 of 5 add-ons will not be loaded",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Addon A") {
		t.Errorf("clean add-on reported:\n%s", out)
	}
}

func TestCheckCommand_AllValid(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteManifest(t, root, "Solo", "Solo", "## Title: Solo")

	app := newTestApp(t, nil)
	if err := app.run(t, "check", "--dir", root); err != nil {
		t.Fatalf("check error: %v", err)
	}
	if !strings.Contains(app.out(), "All 1 add-ons will be loaded") {
		t.Errorf("unexpected output:\n%s", app.out())
	}
}

func TestCheckCommand_JSON(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	err := app.run(t, "check", "--dir", writeAddonsTree(t), "--format", "json")
	if err == nil {
		t.Fatal("expected failure for invalid add-on")
	}

	var got checkOutput
	if err := json.Unmarshal(app.stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, app.stdout)
	}
	if got.Total != 4 {
		t.Errorf("total = %d, want 4", got.Total)
	}
	if len(got.Invalid) != 1 || got.Invalid[0].RelativePath != "Broken" {
		t.Fatalf("invalid = %+v, want only Broken", got.Invalid)
	}
	if got.Invalid[0].OK {
		t.Error("invalid record should have OK=false")
	}
}
