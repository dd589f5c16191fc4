package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/famcalc/internal/tui/tuistyles"
)

// ProgressBar draws a filled bar for current out of total.
type ProgressBar struct {
	Current     int
	Total       int
	Width       int
	Label       string
	Color       lipgloss.Color
	ShowPercent bool
	ShowCount   bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total int) *ProgressBar {
	return &ProgressBar{
		Current:   current,
		Total:     total,
		Width:     30,
		Color:     tuistyles.ColorSuccess,
		ShowCount: true,
	}
}

// WithLabel sets the label shown before the bar.
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// WithColor sets the fill color.
func (p *ProgressBar) WithColor(c lipgloss.Color) *ProgressBar {
	p.Color = c
	return p
}

// Percent switches the stats from a count to a percentage.
func (p *ProgressBar) Percent() *ProgressBar {
	p.ShowPercent = true
	p.ShowCount = false
	return p
}

// Percentage returns the completion percentage, clamped to 0-100.
func (p *ProgressBar) Percentage() int {
	if p.Total <= 0 || p.Current <= 0 {
		return 0
	}
	if p.Current >= p.Total {
		return 100
	}
	return p.Current * 100 / p.Total
}

// Filled returns how many cells of the bar are filled.
func (p *ProgressBar) Filled() int {
	if p.Total <= 0 || p.Width <= 0 {
		return 0
	}
	return min(p.Width, max(0, p.Current)*p.Width/p.Total)
}

// Render returns the styled progress bar on a single line.
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(tuistyles.MetricLabelStyle.Render(p.Label))
		content.WriteString(" ")
	}

	filled := p.Filled()
	barStyle := lipgloss.NewStyle().Foreground(p.Color)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty := p.Width - filled; empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	var stats []string
	if p.ShowPercent {
		stats = append(stats, tuistyles.MetricValueStyle.Render(fmt.Sprintf("%d%%", p.Percentage())))
	}
	if p.ShowCount {
		stats = append(stats, tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%d/%d", p.Current, p.Total)))
	}
	if len(stats) > 0 {
		content.WriteString(" ")
		content.WriteString(strings.Join(stats, " • "))
	}

	return content.String()
}
