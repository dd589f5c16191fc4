package domain

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// FamilyTimeLabel returns the Portuguese label of a family time category.
func FamilyTimeLabel(c Category) string {
	switch c {
	case CategoryLow:
		return "Precisa Atenção"
	case CategoryMedium:
		return "Em Construção"
	case CategoryHigh:
		return "Engajado"
	default:
		return "Altamente Conectado"
	}
}

// ScreenTimeLabel returns the Portuguese label of a screen time category.
func ScreenTimeLabel(c Category) string {
	switch c {
	case CategoryLow:
		return "Atenção Necessária"
	case CategoryMedium:
		return "Moderado"
	case CategoryHigh:
		return "Equilibrado"
	default:
		return "Excelente"
	}
}

// SocialROILabel returns the Portuguese label of a social return category.
func SocialROILabel(c Category) string {
	switch c {
	case CategoryLow:
		return "Investimento Inicial"
	case CategoryMedium:
		return "Investimento Moderado"
	case CategoryHigh:
		return "Alto Investimento"
	default:
		return "Investimento Excepcional"
	}
}

// MomentsLabel returns the Portuguese label of a moments category.
func MomentsLabel(c Category) string {
	switch c {
	case CategoryLow:
		return "Começando"
	case CategoryMedium:
		return "Em Progresso"
	case CategoryHigh:
		return "Engajado"
	default:
		return "Conectado"
	}
}

func (r FamilyTimeResult) Summary() Summary {
	return Summary{
		Calculator:    CalculatorFamilyTime,
		Title:         CalculatorFamilyTime.Title(),
		Score:         float64(r.Score),
		Category:      r.Category,
		CategoryLabel: r.CategoryLabel,
		Metrics: []Metric{
			{Label: "Média diária", Value: numfmt.Minutes(r.DailyAverage)},
			{Label: "Total semanal", Value: numfmt.Minutes(float64(r.WeeklyTotal))},
			{Label: "Total mensal", Value: numfmt.Minutes(float64(r.MonthlyTotal))},
			{Label: "Projeção anual", Value: numfmt.Minutes(float64(r.YearlyProjection))},
			{Label: "Comparação nacional", Value: fmt.Sprintf("%+d%%", r.NationalComparison)},
			{Label: "Progresso até Altamente Conectado", Value: fmt.Sprintf("%d%%", r.ProgressToExcellent)},
		},
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
	}
}

func (r ScreenTimeResult) Summary() Summary {
	appropriate := "Não"
	if r.AgeAppropriate {
		appropriate = "Sim"
	}
	return Summary{
		Calculator:    CalculatorScreenTime,
		Title:         CalculatorScreenTime.Title(),
		Score:         float64(r.Score),
		Category:      r.Category,
		CategoryLabel: ScreenTimeLabel(r.Category),
		Metrics: []Metric{
			{Label: "Nível de risco", Value: r.RiskLevel.Label()},
			{Label: "Adequado para a idade", Value: appropriate},
			{Label: "Limite sugerido", Value: numfmt.Minutes(float64(r.SuggestedLimit)) + "/dia"},
			{Label: "Média nacional", Value: numfmt.Minutes(float64(r.NationalAverage)) + "/dia"},
			{Label: "Horas por ano", Value: numfmt.Grouped(int64(r.Projections.YearlyHours))},
			{Label: "Horas até os 18 anos", Value: numfmt.Grouped(int64(r.Projections.HoursUntil18))},
		},
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
	}
}

func (r SocialROIResult) Summary() Summary {
	return Summary{
		Calculator:    CalculatorSocialROI,
		Title:         CalculatorSocialROI.Title(),
		Score:         float64(r.Score),
		Category:      r.Category,
		CategoryLabel: r.CategoryLabel,
		Metrics: []Metric{
			{Label: "Valor anual", Value: numfmt.Currency(r.TotalROI.Decimal)},
			{Label: "Valor até os 18 anos", Value: numfmt.Currency(r.LifetimeROI.Decimal)},
			{Label: "Valor por hora", Value: numfmt.Currency(r.PerFamilyBenefit.Decimal)},
			{Label: "Economia pública anual", Value: numfmt.Currency(r.PublicSavings.Total.Decimal)},
			{Label: "Impacto em 1000 famílias", Value: numfmt.Currency(r.SocietalImpact.Decimal)},
		},
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
	}
}

func (r MealsResult) Summary() Summary {
	return Summary{
		Calculator:    CalculatorMeals,
		Title:         CalculatorMeals.Title(),
		Score:         float64(r.Score),
		Category:      r.Category,
		CategoryLabel: r.CurrentStatus.CategoryLabel,
		Metrics: []Metric{
			{Label: "Refeições por semana", Value: strconv.Itoa(r.CurrentStatus.TotalMealsPerWeek)},
			{Label: "Tempo de conexão semanal", Value: numfmt.Minutes(float64(r.CurrentStatus.TotalConnectionMinutes))},
			{Label: "Multiplicador de qualidade", Value: numfmt.Number(r.CurrentStatus.QualityMultiplier)},
			{Label: "Percentil", Value: strconv.Itoa(r.NationalComparison.Percentile)},
			{Label: "Meta de refeições", Value: strconv.Itoa(r.ActionPlan.GoalMeals)},
		},
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
		Sources:         r.Sources,
	}
}

func (r MomentsResult) Summary() Summary {
	return Summary{
		Calculator:    CalculatorMoments,
		Title:         CalculatorMoments.Title(),
		Score:         r.Score,
		Category:      r.Category,
		CategoryLabel: MomentsLabel(r.Category),
		Metrics: []Metric{
			{Label: "Momentos na semana", Value: strconv.Itoa(r.WeeklyView.TotalMoments)},
			{Label: "Meta semanal", Value: strconv.Itoa(r.WeeklyView.GoalMoments)},
			{Label: "Nível", Value: r.ConnectionLevel.Label},
			{Label: "Sequência atual", Value: fmt.Sprintf("%d dias", r.WeeklyView.CurrentStreak)},
			{Label: "Categorias diferentes", Value: strconv.Itoa(r.WeeklyScore.Variety)},
			{Label: "Momentos por ano", Value: numfmt.Grouped(int64(r.YearlyImpact.TotalMoments))},
		},
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
		Suggestions:     r.Suggestions,
		Sources:         r.Sources,
	}
}

func (r QuizResult) Summary() Summary {
	metrics := []Metric{
		{Label: "Pontuação", Value: fmt.Sprintf("%d de %d", r.TotalScore, r.MaxScore)},
		{Label: "Pontuação ponderada", Value: numfmt.Number(r.WeightedScore)},
	}
	for _, dim := range AllDimensions {
		if ds, ok := r.DimensionScores[dim]; ok {
			metrics = append(metrics, Metric{Label: ds.Label, Value: fmt.Sprintf("%d%%", ds.Percentage)})
		}
	}
	return Summary{
		Calculator:      CalculatorParentQuiz,
		Title:           CalculatorParentQuiz.Title(),
		Score:           float64(r.Score),
		Category:        r.Category,
		CategoryLabel:   r.Profile.Label,
		Metrics:         metrics,
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
		Sources:         r.Sources,
	}
}
