package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// Pew Research (2021), average across age groups.
const nationalFamilyMinutesPerDay = 1.8 * 60

// Category cut-offs on quality-adjusted daily minutes. Each is exclusive.
const (
	familyNeedsAttention = 60.0
	familyBuilding       = 90.0
	familyEngaged        = 150.0
)

// Full score is reached at three hours of quality time per day.
const familyMaxScoreMinutes = 180.0

// DailyAverage weights five weekdays and two weekend days.
func DailyAverage(weekdayMinutes, weekendMinutes float64) float64 {
	return (weekdayMinutes*5 + weekendMinutes*2) / 7
}

// FamilyTimeCategory buckets quality-adjusted daily minutes.
func FamilyTimeCategory(adjustedMinutes float64) domain.Category {
	switch {
	case adjustedMinutes < familyNeedsAttention:
		return domain.CategoryLow
	case adjustedMinutes < familyBuilding:
		return domain.CategoryMedium
	case adjustedMinutes < familyEngaged:
		return domain.CategoryHigh
	default:
		return domain.CategoryExcellent
	}
}

// FamilyTimeScore maps daily minutes and quality to 0-100.
func FamilyTimeScore(dailyMinutes, quality float64) int {
	base := math.Min(dailyMinutes/familyMaxScoreMinutes*100, 100)
	return int(math.Min(numfmt.Round(base*quality), 100))
}

// NationalComparison is the percentage difference from the national average.
func NationalComparison(dailyMinutes float64) int {
	diff := dailyMinutes - nationalFamilyMinutesPerDay
	return numfmt.RoundInt(diff / nationalFamilyMinutesPerDay * 100)
}

// ProgressToExcellent is how far daily minutes are toward the engaged cut-off.
func ProgressToExcellent(dailyMinutes float64) int {
	return int(math.Min(numfmt.Round(dailyMinutes/familyEngaged*100), 100))
}

func familyTimeRecommendations(category domain.Category, quality float64) []string {
	var recs []string
	switch category {
	case domain.CategoryLow:
		recs = []string{
			"Comece adicionando 15 minutos de tempo de qualidade por dia",
			"Estabeleça um ritual diário inegociável, como uma refeição em família",
			"Crie zonas livres de telas durante o tempo em família",
		}
	case domain.CategoryMedium:
		recs = []string{
			"Aumente o tempo nos fins de semana com atividades ao ar livre",
			"Adicione leitura compartilhada antes de dormir",
			"Envolva toda a família em atividades de culinária",
		}
	case domain.CategoryHigh:
		recs = []string{
			"Continue mantendo a consistência do tempo em família",
			"Experimente novas atividades para aumentar o engajamento",
			"Crie tradições familiares mensais especiais",
		}
	default:
		recs = []string{
			"Excelente! Continue mantendo esse nível de conexão",
			"Considere documentar esses momentos em um álbum familiar",
			"Compartilhe suas práticas com outras famílias como inspiração",
		}
	}
	if quality < 1 {
		recs = append(recs, "Foque em aumentar a qualidade das interações diminuindo distrações")
	}
	return recs
}

func familyTimeInsights(dailyMinutes float64, yearlyMinutes, comparison, familySize int) []string {
	insights := make([]string, 0, 4)

	hours := math.Floor(dailyMinutes / 60)
	mins := numfmt.Round(math.Mod(dailyMinutes, 60))
	if hours > 0 {
		extra := ""
		if mins > 0 {
			extra = fmt.Sprintf(" e %smin", numfmt.Number(mins))
		}
		insights = append(insights, fmt.Sprintf("Você dedica em média %sh%s por dia à família", numfmt.Number(hours), extra))
	} else {
		insights = append(insights, fmt.Sprintf("Você dedica em média %s minutos por dia à família", numfmt.Number(mins)))
	}

	switch {
	case comparison > 0:
		insights = append(insights, fmt.Sprintf("Isso é %d%% acima da média nacional", comparison))
	case comparison < 0:
		insights = append(insights, fmt.Sprintf("Isso está %d%% abaixo da média nacional", -comparison))
	default:
		insights = append(insights, "Você está na média nacional de tempo familiar")
	}

	yearlyHours := float64(yearlyMinutes) / 60
	insights = append(insights, fmt.Sprintf("Em um ano, isso totaliza aproximadamente %d horas em família", numfmt.RoundInt(yearlyHours)))

	// Roughly two hours per memorable event.
	events := int(math.Floor(yearlyHours / 2))
	insights = append(insights, fmt.Sprintf("Potencial de criar %d momentos memoráveis por ano", events*familySize))

	return insights
}

// CalculateFamilyTime scores the time a parent dedicates to the family.
func CalculateFamilyTime(in domain.FamilyTimeInput) (domain.FamilyTimeResult, error) {
	if err := in.Validate(); err != nil {
		return domain.FamilyTimeResult{}, err
	}

	daily := DailyAverage(in.WeekdayMinutes, in.WeekendMinutes)
	weekly := numfmt.RoundInt(daily * 7)
	monthly := numfmt.RoundInt(daily * 30)
	yearly := numfmt.RoundInt(daily * 365)

	category := FamilyTimeCategory(daily * in.QualityMultiplier)
	comparison := NationalComparison(daily)

	return domain.FamilyTimeResult{
		Score:               FamilyTimeScore(daily, in.QualityMultiplier),
		Category:            category,
		CategoryLabel:       domain.FamilyTimeLabel(category),
		DailyAverage:        numfmt.Round2(daily),
		WeeklyTotal:         weekly,
		MonthlyTotal:        monthly,
		YearlyProjection:    yearly,
		NationalComparison:  comparison,
		ProgressToExcellent: ProgressToExcellent(daily),
		Recommendations:     familyTimeRecommendations(category, in.QualityMultiplier),
		Insights:            familyTimeInsights(daily, yearly, comparison, in.FamilySize),
	}, nil
}
