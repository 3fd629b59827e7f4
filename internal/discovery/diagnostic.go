// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"

	"github.com/addonscan/addonscan/pkg/manifest"
)

const (
	// SeverityInfo marks a note that is only interesting in verbose output.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeScanRootNotFound is emitted when the scan root does not exist.
	CodeScanRootNotFound DiagnosticCode = "scan_root_not_found"
	// CodeNotAManifest is emitted for candidate files without a title marker.
	CodeNotAManifest DiagnosticCode = "not_a_manifest"
	// CodeManifestReadFailed is emitted when a candidate file cannot be read.
	CodeManifestReadFailed DiagnosticCode = "manifest_read_failed"
	// CodePathSkipped is emitted when a directory cannot be listed during the walk.
	CodePathSkipped DiagnosticCode = "path_skipped"
	// CodeCheckFailed is emitted when a validation check rejects a record.
	CodeCheckFailed DiagnosticCode = "check_failed"
)

var (
	// ErrInvalidSeverity is returned when a Severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is returned when a DiagnosticCode value is not recognized.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity `json:"severity" yaml:"severity" toml:"severity"`
		// Code is a machine-readable identifier (e.g., "scan_root_not_found").
		Code DiagnosticCode `json:"code" yaml:"code" toml:"code"`
		// Message is the human-readable description.
		Message string `json:"message" yaml:"message" toml:"message"`
		// Path is the file path associated with this diagnostic (optional).
		Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error `json:"-" yaml:"-" toml:"-"`
	}

	// Result bundles the records of one scan with the diagnostics produced
	// while scanning. Records keep walk order.
	Result struct {
		// Root is the resolved scan root.
		Root string `json:"root" yaml:"root" toml:"root"`
		// Records holds every validated record.
		Records []*manifest.Record `json:"records" yaml:"records" toml:"records"`
		// Diagnostics holds non-fatal notes in the order they were produced.
		Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics" toml:"diagnostics"`
	}
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidSeverity, s)}
	}
}

// IsValid reports whether c is a known diagnostic code.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeScanRootNotFound, CodeNotAManifest, CodeManifestReadFailed, CodePathSkipped, CodeCheckFailed:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidDiagnosticCode, c)}
	}
}

// RootMissing reports whether the scan ended early because the root did not exist.
func (r *Result) RootMissing() bool {
	for _, d := range r.Diagnostics {
		if d.Code == CodeScanRootNotFound {
			return true
		}
	}
	return false
}

// DiagnosticsAtLeast returns the diagnostics whose severity is min or higher.
func (r *Result) DiagnosticsAtLeast(min Severity) []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		if severityRank(d.Severity) >= severityRank(min) {
			out = append(out, d)
		}
	}
	return out
}

func severityRank(s Severity) int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}
