package tui

import "github.com/rgehrsitz/famcalc/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted

	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	BorderStyle         = tuistyles.BorderStyle
	SelectedItemStyle   = tuistyles.SelectedItemStyle
	UnselectedItemStyle = tuistyles.UnselectedItemStyle
	MetricLabelStyle    = tuistyles.MetricLabelStyle
	MetricValueStyle    = tuistyles.MetricValueStyle
	SectionStyle        = tuistyles.SectionStyle
	ErrorStyle          = tuistyles.ErrorStyle
)

var (
	CategoryColor = tuistyles.CategoryColor
	CategoryStyle = tuistyles.CategoryStyle
)
