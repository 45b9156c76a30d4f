// Package ui holds the color themes shared by the CLI and the calibration
// report. ANSI helpers serve plain table output; lipgloss styles render
// headings and status labels.
package ui
