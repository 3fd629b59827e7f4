// SPDX-License-Identifier: MPL-2.0

// Package discovery walks an add-ons directory, reads every manifest
// candidate and validates the resulting records.
//
// A scan is a single synchronous pass: the tree is walked, each ".txt" and
// ".addon" file is handed to the manifest reader, and once the walk is
// complete every record is validated exactly once. Records are only handed
// out after validation, either as a batch ([Scanner.Scan]) or one at a time
// ([Scanner.All]).
//
// Non-fatal problems (missing scan root, unreadable directories, files that
// are not manifests, failed checks) are returned as [Diagnostic] values
// rather than printed, so the CLI layer decides how to render them.
//
// File organization:
//   - diagnostic.go: Severity, DiagnosticCode, Diagnostic and Result
//   - scanner.go: Scanner, its options and the tree walk
//   - validation.go: named checks and the Validator
package discovery
