// SPDX-License-Identifier: MPL-2.0

// Package view partitions discovered add-on records into the addons, libraries
// and errors views and filters them with a small search query language.
package view
