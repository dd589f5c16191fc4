package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// CSVFormatter writes one row per summary item: section, label, value.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(s domain.Summary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{
		{"Section", "Label", "Value"},
		{"summary", "calculator", string(s.Calculator)},
		{"summary", "score", numfmt.Number(s.Score)},
		{"summary", "category", string(s.Category)},
		{"summary", "categoryLabel", s.CategoryLabel},
	}
	for _, m := range s.Metrics {
		rows = append(rows, []string{"metric", m.Label, m.Value})
	}
	for _, section := range []struct {
		name  string
		items []string
	}{
		{"insight", s.Insights},
		{"recommendation", s.Recommendations},
		{"suggestion", s.Suggestions},
		{"source", s.Sources},
	} {
		for _, item := range section.items {
			rows = append(rows, []string{section.name, "", item})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
