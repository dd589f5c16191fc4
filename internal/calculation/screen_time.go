package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// WHO daily maximums in minutes.
const (
	whoLimitToddler = 60  // ages 2-4
	whoLimitChild   = 120 // ages 5-17
)

// Common Sense Media (2021) daily averages in minutes per age group.
var screenNationalAverages = map[string]int{
	"2-4":   180,
	"5-8":   240,
	"9-12":  300,
	"13-17": 480,
}

// AgeGroup returns the reporting age band of a child.
func AgeGroup(age float64) string {
	switch {
	case age <= 4:
		return "2-4"
	case age <= 8:
		return "5-8"
	case age <= 12:
		return "9-12"
	default:
		return "13-17"
	}
}

// WHORecommendation returns the daily screen limit in minutes for age.
func WHORecommendation(age float64) int {
	if age <= 4 {
		return whoLimitToddler
	}
	return whoLimitChild
}

// ScreenNationalAverage returns the national daily average for age.
func ScreenNationalAverage(age float64) int {
	return screenNationalAverages[AgeGroup(age)]
}

// BaseRiskFactor grades daily screen minutes before habit adjustments.
func BaseRiskFactor(dailyMinutes float64) float64 {
	hours := dailyMinutes / 60
	switch {
	case hours <= 2:
		return 1.0
	case hours <= 4:
		return 1.5
	case hours <= 6:
		return 2.2
	default:
		return 3.0
	}
}

// CalculateRiskMultipliers derives the habit adjustments from the input.
func CalculateRiskMultipliers(in domain.ScreenTimeInput) domain.RiskMultipliers {
	m := domain.RiskMultipliers{Educational: 1, CoViewing: 1, BeforeBed: 1, YoungChild: 1}

	switch {
	case in.EducationalPercent >= 50:
		m.Educational = 0.8
	case in.EducationalPercent >= 25:
		m.Educational = 0.9
	}
	switch {
	case in.CoViewingPercent >= 50:
		m.CoViewing = 0.85
	case in.CoViewingPercent >= 25:
		m.CoViewing = 0.95
	}
	switch {
	case in.BeforeBedMinutes >= 60:
		m.BeforeBed = 1.3
	case in.BeforeBedMinutes >= 30:
		m.BeforeBed = 1.15
	}
	switch {
	case in.ChildAge < 6:
		m.YoungChild = 1.3
	case in.ChildAge < 10:
		m.YoungChild = 1.15
	}

	m.Total = m.Educational * m.CoViewing * m.BeforeBed * m.YoungChild
	return m
}

// ScreenRiskLevel buckets the adjusted risk score. Each bound is inclusive.
func ScreenRiskLevel(risk float64) domain.RiskLevel {
	switch {
	case risk <= 1.2:
		return domain.RiskLow
	case risk <= 2.0:
		return domain.RiskModerate
	case risk <= 3.0:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// ScreenOpportunityCost splits excess minutes across displaced activities.
func ScreenOpportunityCost(excessMinutes float64) domain.OpportunityCost {
	if excessMinutes <= 0 {
		return domain.OpportunityCost{}
	}
	return domain.OpportunityCost{
		FreePlay:         numfmt.RoundInt(excessMinutes * 0.30),
		FamilyTime:       numfmt.RoundInt(excessMinutes * 0.25),
		PhysicalActivity: numfmt.RoundInt(excessMinutes * 0.25),
		Sleep:            numfmt.RoundInt(excessMinutes * 0.20),
	}
}

// ScreenProjections extrapolates daily minutes to longer horizons and to age 18.
func ScreenProjections(dailyMinutes, age float64) domain.ScreenProjections {
	yearlyHours := dailyMinutes * 365 / 60
	hoursUntil18 := yearlyHours * math.Max(0, 18-age)
	return domain.ScreenProjections{
		WeeklyHours:  numfmt.RoundInt(dailyMinutes * 7 / 60),
		MonthlyHours: numfmt.RoundInt(dailyMinutes * 30 / 60),
		YearlyHours:  numfmt.RoundInt(yearlyHours),
		YearlyDays:   numfmt.Round1(yearlyHours / 24),
		HoursUntil18: numfmt.RoundInt(hoursUntil18),
		DaysUntil18:  numfmt.Round1(hoursUntil18 / 24),
	}
}

// ScreenTimeScore is 100 at or under the WHO limit and decays with the ratio
// to it. Good habits (a total multiplier below 1) raise the score.
func ScreenTimeScore(dailyMinutes, age, riskMultiplier float64) int {
	ratio := dailyMinutes / float64(WHORecommendation(age))
	var base float64
	switch {
	case ratio <= 1:
		base = 100
	case ratio <= 2:
		base = 100 - (ratio-1)*40
	case ratio <= 3:
		base = 60 - (ratio-2)*30
	default:
		base = math.Max(0, 30-(ratio-3)*15)
	}
	return int(numfmt.Clamp(numfmt.Round(base/riskMultiplier), 0, 100))
}

// ScreenTimeCategory buckets the score. Each bound is inclusive.
func ScreenTimeCategory(score int) domain.Category {
	switch {
	case score >= 80:
		return domain.CategoryExcellent
	case score >= 60:
		return domain.CategoryHigh
	case score >= 40:
		return domain.CategoryMedium
	default:
		return domain.CategoryLow
	}
}

func screenTimeRecommendations(in domain.ScreenTimeInput, level domain.RiskLevel) []string {
	var recs []string
	limit := float64(WHORecommendation(in.ChildAge))
	excess := in.DailyScreenMinutes - limit

	if excess > 0 {
		if excess > 120 {
			recs = append(recs, fmt.Sprintf("Reduza gradualmente o tempo de tela em 30 minutos por semana até atingir %sh/dia", numfmt.Number(limit/60)))
		} else {
			recs = append(recs, fmt.Sprintf("Tente reduzir %s minutos por dia para se aproximar da recomendação", numfmt.Number(numfmt.Round(excess/2))))
		}
	}
	if in.BeforeBedMinutes > 0 {
		recs = append(recs, "Evite telas pelo menos 1 hora antes de dormir para melhorar a qualidade do sono")
	}
	if in.EducationalPercent < 50 {
		recs = append(recs, "Priorize conteúdos educacionais e criativos em vez de consumo passivo")
	}
	if in.CoViewingPercent < 25 {
		recs = append(recs, "Assista junto com a criança para transformar telas em momentos de conexão")
	}
	if in.ChildAge < 6 {
		recs = append(recs, "Para crianças pequenas, priorize brincadeiras físicas e interações face a face")
	}
	if level == domain.RiskHigh || level == domain.RiskCritical {
		recs = append(recs, "Considere adiar o acesso a smartphone até os 14 anos e redes sociais até os 16")
	}
	if len(recs) < 3 {
		recs = append(recs, "Crie zonas e horários livres de telas em casa, como durante as refeições")
	}
	return limitStrings(recs, 4)
}

func screenTimeInsights(in domain.ScreenTimeInput, p domain.ScreenProjections) []string {
	limit := float64(WHORecommendation(in.ChildAge))
	national := float64(ScreenNationalAverage(in.ChildAge))
	daily := in.DailyScreenMinutes

	insights := []string{
		fmt.Sprintf("%s minutos por dia equivalem a %s horas diárias", numfmt.Number(daily), numfmt.Fixed1(daily/60)),
	}

	if daily <= limit {
		insights = append(insights, fmt.Sprintf("Dentro da recomendação da OMS de %sh/dia para essa faixa etária", numfmt.Number(limit/60)))
	} else {
		insights = append(insights, fmt.Sprintf("%s minutos acima da recomendação da OMS de %sh/dia", numfmt.Number(daily-limit), numfmt.Number(limit/60)))
	}

	switch {
	case daily < national:
		insights = append(insights, fmt.Sprintf("%d%% abaixo da média nacional para essa idade", numfmt.RoundInt((national-daily)/national*100)))
	case daily > national:
		insights = append(insights, fmt.Sprintf("%d%% acima da média nacional para essa idade", numfmt.RoundInt((daily-national)/national*100)))
	}

	insights = append(insights, fmt.Sprintf("Em um ano, isso totaliza %d horas (%s dias inteiros)", p.YearlyHours, numfmt.Number(p.YearlyDays)))

	if in.ChildAge < 18 && p.HoursUntil18 > 0 {
		insights = append(insights, fmt.Sprintf("Até os 18 anos: %s horas de tela (%s dias)", numfmt.Grouped(int64(p.HoursUntil18)), numfmt.Number(p.DaysUntil18)))
	}
	return insights
}

// CalculateScreenTime scores a child's screen habits against WHO guidance.
func CalculateScreenTime(in domain.ScreenTimeInput) (domain.ScreenTimeResult, error) {
	if err := in.Validate(); err != nil {
		return domain.ScreenTimeResult{}, err
	}

	multipliers := CalculateRiskMultipliers(in)
	risk := BaseRiskFactor(in.DailyScreenMinutes) * multipliers.Total
	level := ScreenRiskLevel(risk)
	limit := WHORecommendation(in.ChildAge)
	projections := ScreenProjections(in.DailyScreenMinutes, in.ChildAge)
	score := ScreenTimeScore(in.DailyScreenMinutes, in.ChildAge, multipliers.Total)

	return domain.ScreenTimeResult{
		Score:           score,
		Category:        ScreenTimeCategory(score),
		RiskLevel:       level,
		RiskScore:       numfmt.Round2(risk),
		AgeAppropriate:  in.DailyScreenMinutes <= float64(limit),
		SuggestedLimit:  limit,
		AgeGroup:        AgeGroup(in.ChildAge),
		NationalAverage: ScreenNationalAverage(in.ChildAge),
		Multipliers:     multipliers,
		OpportunityCost: ScreenOpportunityCost(in.DailyScreenMinutes - float64(limit)),
		Projections:     projections,
		Recommendations: screenTimeRecommendations(in, level),
		Insights:        screenTimeInsights(in, projections),
	}, nil
}
