package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the markdown report to a standalone HTML page.
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (HTMLFormatter) Format(s domain.Summary) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(s)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdown.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	data := struct {
		Title    string
		Category domain.Category
		Body     template.HTML
	}{s.Title, s.Category, template.HTML(body.String())}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
