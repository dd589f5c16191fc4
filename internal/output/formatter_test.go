package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSummary() domain.Summary {
	return domain.Summary{
		Calculator:    domain.CalculatorFamilyTime,
		Title:         "Tempo de Qualidade",
		Score:         72,
		Category:      domain.CategoryHigh,
		CategoryLabel: "Engajado",
		Metrics: []domain.Metric{
			{Label: "Média diária", Value: "45 min"},
			{Label: "Total semanal", Value: "5h 15min"},
		},
		Insights:        []string{"Você passa 45 minutos por dia com seus filhos"},
		Recommendations: []string{"Reserve um momento | sem telas"},
		Sources:         []string{"Pew Research Center (2023)"},
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(s domain.Summary) ([]byte, error) {
			called = true
			return []byte(s.Title), nil
		},
	}

	out, err := formatter.Format(buildTestSummary())
	require.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, "Tempo de Qualidade", string(out))
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"", "console"},
		{"text", "console"},
		{"JSON", "json"},
		{"csv", "csv"},
		{"md", "markdown"},
		{"markdown", "markdown"},
		{"html", "html"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.name)
		require.NotNil(t, f, tt.name)
		assert.Equal(t, tt.expected, f.Name(), tt.name)
	}
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "markdown"}, FormatterNames())
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "TEMPO DE QUALIDADE")
	assert.Contains(t, text, "Pontuação: 72 (Engajado)")
	assert.Contains(t, text, "  Média diária:  45 min\n", "Should align metric values")
	assert.Contains(t, text, "  Total semanal: 5h 15min\n")
	assert.Contains(t, text, "RECOMENDAÇÕES:\n  • Reserve um momento | sem telas\n")
	assert.NotContains(t, text, "SUGESTÕES:", "Should skip empty sections")
}

func TestJSONFormatter(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		out, err := JSONFormatter{Pretty: pretty}.Format(buildTestSummary())
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, "tempo-familiar", decoded["calculator"])
		assert.Equal(t, 72.0, decoded["score"])
		assert.Equal(t, "Engajado", decoded["categoryLabel"])
		assert.NotContains(t, decoded, "suggestions")
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"Section", "Label", "Value"}, rows[0])
	assert.Equal(t, []string{"summary", "score", "72"}, rows[2])
	assert.Equal(t, []string{"metric", "Média diária", "45 min"}, rows[5])
	assert.Equal(t, []string{"source", "", "Pew Research Center (2023)"}, rows[9])
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# Tempo de Qualidade\n")
	assert.Contains(t, md, "| Média diária | 45 min |\n")
	assert.Contains(t, md, "## Recomendações\n\n- Reserve um momento | sem telas\n")
	assert.NotContains(t, md, "## Sugestões")
}

func TestHTMLFormatter(t *testing.T) {
	s := buildTestSummary()
	s.Insights = append(s.Insights, "<script>alert(1)</script>")

	out, err := HTMLFormatter{}.Format(s)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>Tempo de Qualidade</title>")
	assert.Contains(t, html, `<body class="category-high">`)
	assert.Contains(t, html, "<h1>Tempo de Qualidade</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>45 min</td>")
	assert.NotContains(t, html, "<script>", "Should not pass raw HTML through")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(domain.Summary) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestSummary(), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "famcalc_tempo-familiar_")
	assert.Contains(t, filename, ".txt")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(domain.Summary) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestSummary(), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}
