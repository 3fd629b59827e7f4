// SPDX-License-Identifier: MPL-2.0

// Package issue turns scan and configuration failures into messages a player
// can act on: ActionableError carries the failed operation with suggestions,
// and the catalog maps issue IDs to Markdown help rendered with glamour.
package issue
