package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// MarkdownFormatter renders a GitHub-flavored markdown report.
type MarkdownFormatter struct{}

func (MarkdownFormatter) Name() string { return "markdown" }

func (MarkdownFormatter) Format(s domain.Summary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", s.Title)
	fmt.Fprintf(&buf, "**Pontuação:** %s (%s)\n\n", numfmt.Number(s.Score), s.CategoryLabel)

	if len(s.Metrics) > 0 {
		buf.WriteString("## Resultados\n\n| Indicador | Valor |\n|---|---|\n")
		for _, m := range s.Metrics {
			fmt.Fprintf(&buf, "| %s | %s |\n", escapeCell(m.Label), escapeCell(m.Value))
		}
		buf.WriteString("\n")
	}

	writeMarkdownList(&buf, "Insights", s.Insights)
	writeMarkdownList(&buf, "Recomendações", s.Recommendations)
	writeMarkdownList(&buf, "Sugestões", s.Suggestions)
	writeMarkdownList(&buf, "Fontes", s.Sources)
	return buf.Bytes(), nil
}

func writeMarkdownList(buf *bytes.Buffer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(buf, "- %s\n", item)
	}
	buf.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
