// SPDX-License-Identifier: MPL-2.0

// Package testutil holds fail-fast helpers shared by the test suites:
// environment overrides that restore themselves and fixture writers for
// AddOns trees.
package testutil
