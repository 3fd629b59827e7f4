// SPDX-License-Identifier: MPL-2.0

// Package manifest reads add-on manifest files and folds their metadata lines
// into a fixed-shape Record.
//
// A manifest is a plain text file (".txt" or ".addon") made of metadata lines
// of the form
//
//	## Title: |cFFD700My|r Addon
//	## APIVersion: 101041 101042
//	## DependsOn: LibAddonMenu-2.0>=30 LibCustomMenu
//
// Lines starting with ";" are comments; every other line (usually a file list)
// is ignored. A file is only treated as a manifest when its content contains
// the "## Title" marker.
//
// The package is organised in three layers:
//   - [StripColors]: removes |cRRGGBB...|r color markup from free-text values
//   - [ParseLine] and [Apply]: turn one "## Field: value" line into a typed
//     contribution using the closed [Field] table
//   - [ReadFile] and [Parse]: decode a file and build a [Record] from it
//
// Per-line problems never fail a file: they are appended to Record.Errors and
// parsing continues with the next line.
package manifest
