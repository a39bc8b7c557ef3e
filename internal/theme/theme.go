package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sailcheck/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorNavy    = lipgloss.AdaptiveColor{Dark: "#4C6EF5", Light: "#1E3A8A"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply selects the dark or light side of every adaptive color, overriding
// terminal background detection.
func Apply(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorNavy).
	Padding(0, 1)

// EmergencyHeaderStyle replaces HeaderStyle while the emergency view is shown.
var EmergencyHeaderStyle = HeaderStyle.
	Background(ColorRed)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps bordered content areas such as help and the runner.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders finished or inactive rows.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Faint(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// WarningStyle is used for the free-plan limit notice.
var WarningStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange)

// StatusStyle returns a color-coded style for a task status.
func StatusStyle(status model.TaskStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.TaskStatusCompleted:
		return base.Foreground(ColorGreen)
	case model.TaskStatusSkipped:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// StatusGlyph returns the single-character marker for a task status.
func StatusGlyph(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusCompleted:
		return "✓"
	case model.TaskStatusSkipped:
		return "»"
	default:
		return "○"
	}
}

// PriorityStyle returns a color-coded style for a task priority.
func PriorityStyle(priority model.TaskPriority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.TaskPriorityCritical:
		return base.Foreground(ColorRed)
	case model.TaskPriorityHigh:
		return base.Foreground(ColorOrange)
	case model.TaskPriorityMedium:
		return base.Foreground(ColorYellow)
	case model.TaskPriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// CategoryStyle returns a badge style for a checklist category. A
// checklist color, when set, wins over the category default.
func CategoryStyle(category model.Category, color string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if color != "" {
		return base.Foreground(lipgloss.Color(color))
	}

	switch category {
	case model.CategoryEmergency:
		return base.Foreground(ColorRed)
	case model.CategorySafety:
		return base.Foreground(ColorOrange)
	case model.CategoryPreDeparture, model.CategoryDeparture:
		return base.Foreground(ColorBlue)
	case model.CategoryNavigation:
		return base.Foreground(ColorMagenta)
	case model.CategoryArrival:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
