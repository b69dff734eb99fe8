package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)).
			Strikethrough(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	MarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)
)

// tagPillStyle renders a committed tag on its colour
func tagPillStyle(color string, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)
	if selected {
		style = style.Underline(true).Bold(true)
	}
	return style
}
