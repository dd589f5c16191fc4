package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("COMPARAÇÃO DE CENÁRIOS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Calculadora: %s\n", compSet.Calculator))
	sb.WriteString(fmt.Sprintf("Cenário base: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Arquivo: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 10
	labelWidth := 24

	sb.WriteString(tf.pad("Cenário", nameWidth) + " " +
		fmt.Sprintf("%*s %*s", numWidth, "Pontuação", numWidth, "Variação") + "  " +
		"Categoria\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, labelWidth, true))
	}
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, labelWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth, labelWidth int, isBase bool) string {
	name := result.ScenarioName
	delta := "-"
	if isBase {
		name += " (base)"
	} else {
		delta = tf.formatDelta(result.ScoreDiffFromBase)
	}

	label := result.CategoryLabel
	switch {
	case result.CategoryChange > 0:
		label += " ↑"
	case result.CategoryChange < 0:
		label += " ↓"
	}

	return tf.pad(tf.truncate(name, nameWidth), nameWidth) + " " +
		fmt.Sprintf("%*s %*s", numWidth, formatScore(result.Score), numWidth, delta) + "  " +
		tf.truncate(label, labelWidth) + "\n"
}

// formatDelta prints a signed score change; zero prints as "=".
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+" + formatScore(d)
	case d.IsNegative():
		return formatScore(d)
	default:
		return "="
	}
}

// pad right-pads s to width runes.
func (tf *TableFormatter) pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to maxLen runes.
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, tf.formatDelta(alt.ScoreDiffFromBase)))
	}
	return sb.String()
}
