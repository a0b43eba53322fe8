package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the taleemtrack TUI theme
const (
	ColorPrimaryText   = "#E6EAF2" // titles, field labels, table text
	ColorSecondaryText = "#9AA3B2" // hints, placeholders
	ColorDisabledText  = "#6D7383" // muted rows
	ColorBorder        = "#3A4155" // card borders

	ColorAccentMain   = "#2563EB" // headers, active borders
	ColorAccentBright = "#60A5FA" // selected row, focused field

	ColorError   = "#EF4444" // error banner, validation errors
	ColorSuccess = "#22C55E" // current-session badge, confirmations
	ColorWarning = "#F59E0B" // confirm modal
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorAccentBright))

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentMain))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorWarning)).
			Padding(1, 2)
)
