// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the addonscan command tree.
//
// Handlers receive an *App and write only to its stdout and stderr writers.
// Scanning, filtering and configuration live in internal packages; this
// package renders their results.
package cmd
