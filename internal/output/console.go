package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// ConsoleFormatter renders a plain text report for the terminal.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(s domain.Summary) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, strings.ToUpper(s.Title))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Pontuação: %s (%s)\n", numfmt.Number(s.Score), s.CategoryLabel)
	fmt.Fprintln(&buf)

	if len(s.Metrics) > 0 {
		fmt.Fprintln(&buf, "RESULTADOS:")
		width := 0
		for _, m := range s.Metrics {
			width = max(width, len([]rune(m.Label)))
		}
		for _, m := range s.Metrics {
			pad := width - len([]rune(m.Label))
			fmt.Fprintf(&buf, "  %s:%s %s\n", m.Label, strings.Repeat(" ", pad), m.Value)
		}
		fmt.Fprintln(&buf)
	}

	writeList(&buf, "INSIGHTS:", s.Insights)
	writeList(&buf, "RECOMENDAÇÕES:", s.Recommendations)
	writeList(&buf, "SUGESTÕES:", s.Suggestions)
	writeList(&buf, "FONTES:", s.Sources)
	return buf.Bytes(), nil
}

func writeList(buf *bytes.Buffer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(buf, heading)
	for _, item := range items {
		fmt.Fprintf(buf, "  • %s\n", item)
	}
	fmt.Fprintln(buf)
}
