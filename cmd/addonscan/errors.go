// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/addonscan/addonscan/internal/issue"
	"github.com/addonscan/addonscan/pkg/types"
)

type (
	// ExitError carries the process exit code out of a RunE handler, so
	// commands never call os.Exit themselves.
	ExitError struct {
		Code types.ExitCode
		Err  error
	}

	// ServiceError attaches an issue catalog entry to an error. App.report
	// renders the entry on stderr before the error itself is printed.
	ServiceError struct {
		Err     error
		IssueID issue.Id
	}
)

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// newServiceError panics on a nil err: a ServiceError without a cause would
// print help for a failure that never happened.
func newServiceError(err error, id issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: id}
}

func (e *ServiceError) Error() string { return e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError writes the catalog entry for svcErr, if it has one.
func renderServiceError(w io.Writer, svcErr *ServiceError, colorScheme string) {
	if svcErr == nil || svcErr.IssueID == 0 {
		return
	}
	entry := issue.Get(svcErr.IssueID)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(colorScheme)
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
