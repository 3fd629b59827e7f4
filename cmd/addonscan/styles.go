// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette. Each color has a darker variant for light terminal backgrounds;
// lipgloss picks one from the detected background.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#7C3AED"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#6B7280"}
	colorOK      = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}
	colorBroken  = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}
	colorProblem = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	colorPath    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"}
	colorDetail  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

var (
	// TitleStyle renders add-on titles and section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// SubtitleStyle renders labels and secondary text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	// SuccessStyle marks add-ons that will load.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorOK)
	// ErrorStyle marks add-ons that will not load and fatal errors.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBroken)
	// WarningStyle marks manifest problems and non-fatal warnings.
	WarningStyle = lipgloss.NewStyle().Foreground(colorProblem)
	// CmdStyle renders paths, commands and libraries.
	CmdStyle = lipgloss.NewStyle().Foreground(colorPath)
	// VerboseStyle renders info diagnostics shown with --verbose.
	VerboseStyle = lipgloss.NewStyle().Foreground(colorDetail)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
