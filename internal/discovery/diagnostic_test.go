// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"testing"
)

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity Severity
		want     bool
	}{
		{SeverityInfo, true},
		{SeverityWarning, true},
		{SeverityError, true},
		{"", false},
		{"fatal", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.severity.IsValid()
			if ok != tt.want {
				t.Fatalf("IsValid() = %v, want %v", ok, tt.want)
			}
			if !ok && (len(errs) != 1 || !errors.Is(errs[0], ErrInvalidSeverity)) {
				t.Errorf("IsValid() errors = %v, want ErrInvalidSeverity", errs)
			}
		})
	}
}

func TestDiagnosticCode_IsValid(t *testing.T) {
	t.Parallel()

	for _, code := range []DiagnosticCode{
		CodeScanRootNotFound, CodeNotAManifest, CodeManifestReadFailed, CodePathSkipped, CodeCheckFailed,
	} {
		if ok, errs := code.IsValid(); !ok {
			t.Errorf("%q.IsValid() = false, %v", code, errs)
		}
	}

	ok, errs := DiagnosticCode("bogus").IsValid()
	if ok {
		t.Fatal("bogus code reported valid")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidDiagnosticCode) {
		t.Errorf("errors = %v, want ErrInvalidDiagnosticCode", errs)
	}
}

func TestResult_DiagnosticsAtLeast(t *testing.T) {
	t.Parallel()

	r := &Result{Diagnostics: []Diagnostic{
		{Severity: SeverityInfo, Code: CodeNotAManifest},
		{Severity: SeverityWarning, Code: CodeCheckFailed},
		{Severity: SeverityError, Code: CodeManifestReadFailed},
	}}

	if got := len(r.DiagnosticsAtLeast(SeverityInfo)); got != 3 {
		t.Errorf("info and above = %d, want 3", got)
	}
	if got := len(r.DiagnosticsAtLeast(SeverityWarning)); got != 2 {
		t.Errorf("warning and above = %d, want 2", got)
	}
	got := r.DiagnosticsAtLeast(SeverityError)
	if len(got) != 1 || got[0].Code != CodeManifestReadFailed {
		t.Errorf("error and above = %v", got)
	}
	if r.RootMissing() {
		t.Error("RootMissing() = true without scan_root_not_found")
	}
}
