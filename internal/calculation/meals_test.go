package calculation

import (
	"testing"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealsCategoryFor(t *testing.T) {
	tests := []struct {
		meals    int
		expected domain.MealsCategory
	}{
		{0, domain.MealsDisconnected},
		{2, domain.MealsDisconnected},
		{3, domain.MealsBuilding},
		{4, domain.MealsBuilding},
		{5, domain.MealsEngaged},
		{6, domain.MealsEngaged},
		{7, domain.MealsConnected},
		{21, domain.MealsConnected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, MealsCategoryFor(tt.meals), "meals=%d", tt.meals)
	}
}

func TestMealQualityMultiplier(t *testing.T) {
	assert.InDelta(t, 0.8, MealQualityMultiplier(domain.Duration10To20, domain.ScreensSometimes, false, 1), 1e-9)
	assert.InDelta(t, 1.3*1.4*1.25*1.2, MealQualityMultiplier(domain.DurationMore30, domain.ScreensNever, true, 5), 1e-9)
	assert.InDelta(t, 0.7, MealQualityMultiplier(domain.DurationLess10, domain.ScreensAlways, false, 3), 1e-9)
}

func TestCalculateProtectionFactors(t *testing.T) {
	partial := CalculateProtectionFactors(2, 0.8)
	assert.Equal(t, -4, partial.Obesity.Current)
	assert.Equal(t, -18, partial.Obesity.Potential)
	assert.Equal(t, -3, partial.SubstanceUse.Current)
	assert.Equal(t, -5, partial.MentalHealth.Current)

	full := CalculateProtectionFactors(7, 1)
	assert.Equal(t, -12, full.Obesity.Current)
	assert.Equal(t, -35, full.EatingDisorders.Current)
	assert.Equal(t, -25, full.MentalHealth.Current)
}

func TestMealsActionPlan(t *testing.T) {
	plan := MealsActionPlan(0, domain.MealsDisconnected)
	assert.Equal(t, 5, plan.GoalMeals)
	goals := make([]int, 0, 4)
	for _, w := range plan.WeeklyPlan {
		goals = append(goals, w.Goal)
	}
	assert.Equal(t, []int{2, 4, 5, 5}, goals)
	assert.Len(t, plan.GoldenRules, 5)

	high := MealsActionPlan(12, domain.MealsConnected)
	assert.Equal(t, 14, high.GoalMeals)
	assert.Equal(t, 13, high.WeeklyPlan[0].Goal)
	assert.Equal(t, 14, high.WeeklyPlan[3].Goal)
}

func TestCalculateMeals(t *testing.T) {
	result, err := CalculateMeals(domain.MealsInput{
		DinnerPerWeek:       2,
		AverageDuration:     domain.Duration10To20,
		ScreensPresent:      domain.ScreensSometimes,
		ConversationQuality: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, result.Score)
	assert.Equal(t, domain.CategoryLow, result.Category)
	assert.Equal(t, domain.MealsDisconnected, result.CurrentStatus.Category)
	assert.Equal(t, "Familia Desconectada", result.CurrentStatus.CategoryLabel)
	assert.Equal(t, 30, result.CurrentStatus.TotalConnectionMinutes)
	assert.Equal(t, 0.8, result.CurrentStatus.QualityMultiplier)
	assert.Equal(t, 15, result.NationalComparison.Percentile)
	assert.Equal(t, 26, result.YearlyProjection.Hours)
	assert.Equal(t, 1.1, result.YearlyProjection.Days)
	assert.Equal(t, 10, result.ImpactOfOne.RiskReduction)

	assert.Equal(t, []string{
		"Sua familia faz 2 refeicoes juntos por semana",
		"Isso e 2 refeicoes a menos que a media nacional (4/semana)",
		"Voce esta no percentil 15 das familias brasileiras",
		"Melhorar a qualidade (menos telas, mais conversa) pode multiplicar os beneficios",
	}, result.Insights)
	assert.Len(t, result.Recommendations, 4)
	assert.Len(t, result.ConversationStarters, 10)
	assert.Len(t, result.Sources, 4)
}

func TestCalculateMeals_SingularDifference(t *testing.T) {
	result, err := CalculateMeals(domain.MealsInput{
		BreakfastPerWeek:    2,
		DinnerPerWeek:       3,
		AverageDuration:     domain.Duration20To30,
		ScreensPresent:      domain.ScreensNever,
		BothParentsPresent:  true,
		ConversationQuality: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryHigh, result.Category)
	assert.Equal(t, 100, result.Score, "Should cap the quality score")
	assert.Equal(t, "Isso e 1 refeicao a mais que a media nacional (4/semana)", result.Insights[1])
	assert.Equal(t, "A qualidade das suas refeicoes e excelente - potencializando os beneficios!", result.Insights[3])
}

func TestMealsInsights_Plural(t *testing.T) {
	cmp := domain.MealsComparison{NationalAverage: 4, Percentile: 70}

	more := mealsInsights(7, 1, cmp)
	assert.Equal(t, "Isso e 3 refeicoes a mais que a media nacional (4/semana)", more[1])

	fewer := mealsInsights(1, 1, cmp)
	assert.Equal(t, "Isso e 3 refeicoes a menos que a media nacional (4/semana)", fewer[1])

	for _, line := range append(more, fewer...) {
		assert.NotContains(t, line, "refeicaoes")
	}
}

func TestCalculateMeals_Validation(t *testing.T) {
	_, err := CalculateMeals(domain.MealsInput{
		DinnerPerWeek:       8,
		AverageDuration:     "forever",
		ScreensPresent:      "maybe",
		ConversationQuality: 0,
	})
	require.Error(t, err)

	verrs, ok := err.(domain.ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, []string{"dinnerPerWeek", "averageDuration", "screensPresent", "conversationQuality"}, verrs.Fields())
}
