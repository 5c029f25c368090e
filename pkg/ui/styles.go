package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.Color("#00D7FF")
	magenta = lipgloss.Color("#D75FD7")
	green   = lipgloss.Color("#5FD75F")
	yellow  = lipgloss.Color("#FFD75F")
	orange  = lipgloss.Color("#FF8700")
	red     = lipgloss.Color("#FF5F5F")
	dim     = lipgloss.Color("#8A8A8A")

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(yellow)

	successStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(orange).
			Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(magenta)

	dimStyle = lipgloss.NewStyle().
			Foreground(dim).
			Faint(true)

	// JSON token styles
	keyStyle    = lipgloss.NewStyle().Foreground(cyan)
	stringStyle = lipgloss.NewStyle().Foreground(green)
	numberStyle = lipgloss.NewStyle().Foreground(yellow)
	boolStyle   = lipgloss.NewStyle().Foreground(magenta)
	nullStyle   = lipgloss.NewStyle().Foreground(dim)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(magenta).
			Foreground(cyan).
			Bold(true).
			Padding(0, 2)
)
