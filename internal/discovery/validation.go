// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"log/slog"

	"github.com/addonscan/addonscan/pkg/manifest"
)

// CheckFolderNameMatchesManifest requires the manifest file name (without
// extension) to equal the name of the folder holding it. The game refuses to
// load add-ons that break this rule.
const CheckFolderNameMatchesManifest CheckName = "folder-name-matches-manifest"

type (
	// CheckName identifies a validation check.
	CheckName string

	// Check is a named predicate over a fully parsed record.
	Check struct {
		// Name identifies the check in FailedChecks and diagnostics.
		Name CheckName
		// Reason is the short failure description shown to operators.
		Reason string
		// Fn returns true when the record passes.
		Fn func(rec *manifest.Record) bool
	}

	// Validator runs a fixed set of checks against completed records.
	Validator struct {
		checks []Check
		logger *slog.Logger
	}
)

// String returns the check name.
func (n CheckName) String() string { return string(n) }

// DefaultChecks returns the checks applied when no custom set is given.
func DefaultChecks() []Check {
	return []Check{
		{
			Name:   CheckFolderNameMatchesManifest,
			Reason: "manifest name mismatch",
			Fn:     folderNameMatchesManifest,
		},
	}
}

// NewValidator creates a Validator for checks. With no checks the
// DefaultChecks set is used.
func NewValidator(checks ...Check) *Validator {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}
	return &Validator{checks: checks, logger: slog.Default()}
}

// Checks returns a copy of the configured checks.
func (v *Validator) Checks() []Check {
	out := make([]Check, len(v.checks))
	copy(out, v.checks)
	return out
}

// Validate runs every check against rec and sets rec.OK to their
// conjunction. Failing check names are stored in rec.FailedChecks; rec.Errors
// is left untouched. One warning diagnostic is returned per failed check.
func (v *Validator) Validate(rec *manifest.Record) []Diagnostic {
	var diags []Diagnostic
	var failed []string

	for _, check := range v.checks {
		if check.Fn(rec) {
			continue
		}
		failed = append(failed, string(check.Name))

		msg := fmt.Sprintf("`%s` from `%s` will not be loaded: %s", rec.DisplayTitle(), rec.RelativePath, check.Reason)
		v.logger.Warn("addon will not be loaded",
			"title", rec.DisplayTitle(),
			"path", rec.RelativePath,
			"check", check.Name,
		)
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeCheckFailed,
			Message:  msg,
			Path:     string(rec.ManifestPath),
		})
	}

	rec.OK = len(failed) == 0
	rec.FailedChecks = failed
	return diags
}

func folderNameMatchesManifest(rec *manifest.Record) bool {
	return rec.ManifestFilename == rec.FolderName()
}
