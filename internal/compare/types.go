package compare

import (
	"fmt"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one scenario's result and its change from the base.
type ComparisonResult struct {
	ScenarioName string          `json:"scenarioName"`
	Description  string          `json:"description,omitempty"`
	Summary      *domain.Summary `json:"summary"`

	Score         decimal.Decimal `json:"score"`
	Category      domain.Category `json:"category"`
	CategoryLabel string          `json:"categoryLabel"`

	// Comparison to base
	ScoreDiffFromBase decimal.Decimal `json:"scoreDiffFromBase"`
	ScorePctFromBase  decimal.Decimal `json:"scorePctFromBase"`
	CategoryChange    int             `json:"categoryChange"` // steps up (+) or down (-)
}

// ComparisonSet is a base scenario compared with its alternatives.
type ComparisonSet struct {
	Calculator         domain.CalculatorName `json:"calculator"`
	BaseScenarioName   string                `json:"baseScenarioName"`
	BaseResult         *ComparisonResult     `json:"baseResult"`
	AlternativeResults []ComparisonResult    `json:"alternativeResults"`
	Recommendations    []string              `json:"recommendations"`
	ConfigPath         string                `json:"configPath,omitempty"`
}

// MetricsCalculator extracts comparison metrics from summaries.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds the comparison row of one scenario.
func (mc *MetricsCalculator) CalculateMetrics(name, description string, summary *domain.Summary) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  name,
		Description:   description,
		Summary:       summary,
		Score:         decimal.NewFromFloat(summary.Score),
		Category:      summary.Category,
		CategoryLabel: summary.CategoryLabel,
	}
}

// CalculateComparison fills in the differences between scenario and base.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ScoreDiffFromBase = scenario.Score.Sub(base.Score)
	if !base.Score.IsZero() {
		scenario.ScorePctFromBase = scenario.ScoreDiffFromBase.
			Div(base.Score).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	scenario.CategoryChange = scenario.Category.Rank() - base.Category.Rank()
	return scenario
}

// GenerateRecommendations summarizes which alternatives improve on the base.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Score.GreaterThan(best.Score) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Melhor pontuação: %s alcança %s pontos (+%s em relação a %s)",
			best.ScenarioName, best.Score.String(), best.ScoreDiffFromBase.String(), base.ScenarioName))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"O cenário base %s mantém a maior pontuação (%s pontos)", base.ScenarioName, base.Score.String()))
	}

	for _, alt := range compSet.AlternativeResults {
		switch {
		case alt.CategoryChange > 0:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s sobe de %q para %q", alt.ScenarioName, base.CategoryLabel, alt.CategoryLabel))
		case alt.CategoryChange < 0:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s cai de %q para %q", alt.ScenarioName, base.CategoryLabel, alt.CategoryLabel))
		}
	}
	return recommendations
}

// formatScore prints a score the way the reports do.
func formatScore(d decimal.Decimal) string {
	f, _ := d.Float64()
	return numfmt.Number(f)
}
