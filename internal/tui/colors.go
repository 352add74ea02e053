package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color constants for the redm terminal theme
const (
	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, elapsed clock

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"

	// Issue status categories
	ColorStatusTodo       = "4" // blue
	ColorStatusInProgress = "5" // magenta
	ColorStatusDone       = "2" // green
)

var (
	todoKeywords       = []string{"new", "to do", "todo", "open", "assigned"}
	inProgressKeywords = []string{"in progress", "progress", "working", "active"}
	doneKeywords       = []string{"done", "closed", "resolved", "completed", "finished"}
)

// StatusColor maps an issue status name onto a category color: blue for
// to-do states, magenta for in-progress, green for done. Unknown
// statuses get no color.
func StatusColor(statusName string) string {
	lower := strings.ToLower(statusName)
	for _, kw := range todoKeywords {
		if strings.Contains(lower, kw) {
			return ColorStatusTodo
		}
	}
	for _, kw := range inProgressKeywords {
		if strings.Contains(lower, kw) {
			return ColorStatusInProgress
		}
	}
	for _, kw := range doneKeywords {
		if strings.Contains(lower, kw) {
			return ColorStatusDone
		}
	}
	return ""
}

// RenderStatus returns the status name styled bold in its category
// color for terminal display.
func RenderStatus(statusName string) string {
	style := lipgloss.NewStyle().Bold(true)
	if color := StatusColor(statusName); color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style.Render(statusName)
}
