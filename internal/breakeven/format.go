package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats goal results as a console table
type TableFormatter struct{}

// Format renders a single lever result.
func (tf *TableFormatter) Format(result *GoalResult) string {
	var sb strings.Builder

	sb.WriteString("META DE HÁBITOS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	fmt.Fprintf(&sb, "Calculadora:  %s\n", result.Calculator.Title())
	fmt.Fprintf(&sb, "Meta:         %s\n", result.Goal)
	fmt.Fprintf(&sb, "Alavanca:     %s\n", result.LeverLabel)
	fmt.Fprintf(&sb, "Status:       %s\n", tf.formatStatus(result.Success))
	fmt.Fprintf(&sb, "Iterações:    %d\n", result.Iterations)
	if result.ConvergenceInfo != "" {
		fmt.Fprintf(&sb, "Convergência: %s\n", result.ConvergenceInfo)
	}
	sb.WriteString("\n")

	sb.WriteString("MUDANÇA NECESSÁRIA\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	fmt.Fprintf(&sb, "Ajuste:       %s %s (margem de %s %s)\n",
		result.Change.String(), result.Unit, result.Headroom.String(), result.Unit)
	if result.Description != "" {
		fmt.Fprintf(&sb, "Transformação: %s\n", result.Description)
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTADO\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	fmt.Fprintf(&sb, "Pontuação:    %g → %g (%s)\n",
		result.BaseSummary.Score, result.Summary.Score, tf.formatDelta(result.ScoreDiffFromBase))
	fmt.Fprintf(&sb, "Categoria:    %s → %s\n", result.BaseSummary.CategoryLabel, result.Summary.CategoryLabel)
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti renders the results of every lever side by side.
func (tf *TableFormatter) FormatMulti(result *MultiLeverResult) string {
	var sb strings.Builder

	sb.WriteString("META DE HÁBITOS: TODAS AS ALAVANCAS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	fmt.Fprintf(&sb, "Calculadora: %s\n", result.Calculator.Title())
	fmt.Fprintf(&sb, "Meta:        %s\n\n", result.Goal)

	fmt.Fprintf(&sb, "%-40s %12s %8s %6s\n", "Alavanca", "Ajuste", "Pontos", "Meta")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range result.Results {
		fmt.Fprintf(&sb, "%-40s %12s %8g %6s\n",
			tf.truncate(r.LeverLabel, 40),
			r.Change.String()+" "+r.Unit,
			r.Summary.Score,
			tf.formatMark(r.Success))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a result or a multi-lever result.
func (jf *JSONFormatter) Format(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Meta alcançada"
	}
	return "⚠ Meta não alcançada"
}

func (tf *TableFormatter) formatMark(success bool) string {
	if success {
		return "✓"
	}
	return "✗"
}

func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+" + delta.String()
	}
	return delta.String()
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
