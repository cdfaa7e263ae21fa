package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskcal/internal/model"
)

// Color palette
var (
	// Category colors
	CategoryToDo       = lipgloss.Color("#4ECDC4") // Blue
	CategoryInProgress = lipgloss.Color("#FFB347") // Orange
	CategoryReview     = lipgloss.Color("#C792EA") // Purple
	CategoryCompleted  = lipgloss.Color("#95E1A3") // Green

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Text      = lipgloss.Color("#FFFFFF")
	Dark      = lipgloss.Color("#1a1a2e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#2E4A62")
	Today     = lipgloss.Color("#FFE66D")
	Error     = lipgloss.Color("#FF6B6B")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	WeekdayStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Bold(true)

	// Day cells
	DayNumberStyle = lipgloss.NewStyle().
			Foreground(Text)

	OutsideMonthStyle = lipgloss.NewStyle().
				Foreground(Border)

	TodayStyle = lipgloss.NewStyle().
			Foreground(Today).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Background(Highlight)

	MoreStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)

	// Filter and status bars
	FilterBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	ChipOnStyle = lipgloss.NewStyle().
			Bold(true)

	ChipOffStyle = lipgloss.NewStyle().
			Foreground(Border).
			Strikethrough(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// CategoryColor returns the bar color for a category
func CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.InProgress:
		return CategoryInProgress
	case model.Review:
		return CategoryReview
	case model.Completed:
		return CategoryCompleted
	default:
		return CategoryToDo
	}
}

// BarStyle returns the style a task bar is drawn with
func BarStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(CategoryColor(c)).
		Foreground(Dark)
}

// FormatCategory renders a category label in its color
func FormatCategory(c model.Category) string {
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Bold(true).Render(c.String())
}
