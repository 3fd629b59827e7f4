// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

// ExitCode is the process status addonscan exits with.
type ExitCode int

const (
	// ExitOK means the command finished and no add-on failed validation.
	ExitOK ExitCode = iota
	// ExitFailure means at least one add-on will not load, or the scan failed.
	ExitFailure
	// ExitUsage means bad flags, arguments or configuration.
	ExitUsage
)

// String returns the code with its meaning, e.g. "2 (usage)".
func (c ExitCode) String() string {
	var meaning string
	switch c {
	case ExitOK:
		meaning = "ok"
	case ExitFailure:
		meaning = "failure"
	case ExitUsage:
		meaning = "usage"
	default:
		return strconv.Itoa(int(c))
	}
	return strconv.Itoa(int(c)) + " (" + meaning + ")"
}
