// Package tuistyles holds the palette and shared lipgloss styles of the
// terminal UI. It is separate from package tui so components can use it.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E86AB")
	ColorSecondary = lipgloss.Color("#A23B72")
	ColorAccent    = lipgloss.Color("#F18F01")
	ColorSuccess   = lipgloss.Color("#3BB273")
	ColorDanger    = lipgloss.Color("#E15554")

	ColorForeground = lipgloss.Color("#EDEDED")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#4A4A4A")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)
)

// CategoryColor picks the color a category is drawn in.
func CategoryColor(c domain.Category) lipgloss.Color {
	switch c {
	case domain.CategoryExcellent:
		return ColorSuccess
	case domain.CategoryHigh:
		return ColorPrimary
	case domain.CategoryMedium:
		return ColorAccent
	default:
		return ColorDanger
	}
}

// CategoryStyle renders text in the category color.
func CategoryStyle(c domain.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Bold(true)
}
