package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.loading:
		content = BorderStyle.Render("Calculando resultado...")
	default:
		switch m.scene {
		case SceneIntro:
			content = m.renderIntro()
		case SceneQuestion:
			content = m.renderQuestion()
		case SceneResult:
			content = m.renderResult()
		}
	}

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.help.View(keys),
	))
}

// contentWidth is the width of boxed content, leaving room for padding.
func (m Model) contentWidth() int {
	return max(40, min(m.width-6, 76))
}

func (m Model) renderTitleBar() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render("famcalc · Quiz de Parentalidade"),
		SubtitleStyle.Render(m.scene.String()),
	)
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Erro: %s", m.err)) + "\n\n" +
		SubtitleStyle.Render("Pressione qualquer tecla para voltar.")
}

func (m Model) renderIntro() string {
	text := fmt.Sprintf(
		"Responda %d perguntas sobre a rotina da sua família.\n"+
			"Cada resposta vale de 0 (%s) a 3 (%s).\n\n"+
			"Pressione enter para começar.",
		len(m.questions), calculation.PointLabels[0], calculation.PointLabels[3])
	return BorderStyle.Width(m.contentWidth()).Render(text)
}

func (m Model) renderQuestion() string {
	q := m.questions[m.current]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Pergunta %d de %d\n", m.current+1, len(m.questions)))
	b.WriteString(components.NewProgressBar(len(m.answers), len(m.questions)).Render())
	b.WriteString("\n\n")
	b.WriteString(MetricLabelStyle.Render(calculation.DimensionLabel(q.Dimension)))
	b.WriteString("\n")
	b.WriteString(MetricValueStyle.Render(q.Text))
	if q.Hint != "" {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(q.Hint))
	}
	b.WriteString("\n\n")

	given, answered := m.answers[q.ID]
	for points := 0; points <= 3; points++ {
		marker := " "
		if answered && given == points {
			marker = "✓"
		}
		line := fmt.Sprintf("%d  %s %s", points, calculation.PointLabels[points], marker)
		if points == m.cursor {
			b.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		if points < 3 {
			b.WriteString("\n")
		}
	}

	return BorderStyle.Width(m.contentWidth()).Render(b.String())
}

func (m Model) renderResult() string {
	r := m.result
	if r == nil {
		return BorderStyle.Render("Nenhum resultado disponível.")
	}
	accent := CategoryColor(r.Category)

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Pontuação", fmt.Sprintf("%d/100", r.Score)).
			WithAccent(accent).WithWidth(22),
		components.NewMetricCard("Total", fmt.Sprintf("%d de %d", r.TotalScore, r.MaxScore)).
			WithWidth(22),
		components.NewMetricCard("Ponderada", fmt.Sprintf("%.1f", r.WeightedScore)).
			WithWidth(22),
	}, 3)

	var b strings.Builder
	b.WriteString(CategoryStyle(r.Category).Render(r.Profile.Label))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(m.contentWidth()).Render(r.Profile.Message))
	b.WriteString("\n\n")
	b.WriteString(cards)
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Dimensões"))
	b.WriteString("\n")
	labelWidth := 0
	for _, d := range domain.AllDimensions {
		labelWidth = max(labelWidth, lipgloss.Width(calculation.DimensionLabel(d)))
	}
	for _, d := range domain.AllDimensions {
		score := r.DimensionScores[d]
		label := calculation.DimensionLabel(d)
		label += strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		bar := components.NewProgressBar(score.Score, score.Max).
			WithLabel(label).
			WithWidth(20).
			WithColor(ColorPrimary).
			Percent()
		b.WriteString(bar.Render())
		b.WriteString("\n")
	}

	writeSection(&b, "Pontos fortes", r.Strengths)

	top := r.TopOpportunity
	writeSection(&b, "Maior oportunidade", []string{
		fmt.Sprintf("%s (%d%%): %s", top.DimensionLabel, top.CurrentPercent, top.SuggestedAction),
		top.ExpectedImpact,
	})
	writeSection(&b, "Metas da semana", r.WeeklyGoals)

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("r recomeça · ← volta à última pergunta"))
	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(SectionStyle.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		if item == "" {
			continue
		}
		b.WriteString("  • ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}
