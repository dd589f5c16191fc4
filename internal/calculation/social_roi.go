package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
	"github.com/shopspring/decimal"
)

// R$70,000 avoided over 7 years at 500 hours a year is about US$20, or
// R$100, per hour.
var valuePerHour = decimal.NewFromInt(100)

// Activity weights by research evidence.
const (
	weightEducational = 1.5
	weightHealth      = 1.2
	weightConnection  = 1.35
	weightGeneral     = 1.0
)

// Public costs avoided per child per year, in reais.
var (
	mentalHealthPrevention   = decimal.NewFromInt(4120)
	substanceAbusePrevention = decimal.NewFromInt(7500)
	educationalDropout       = decimal.NewFromInt(150000)
)

// Shares of the community impact, scaled to 1000 families.
var (
	sharePublicHealth = decimal.NewFromFloat(0.30)
	shareJustice      = decimal.NewFromFloat(0.15)
	shareEducation    = decimal.NewFromFloat(0.25)
	shareProductivity = decimal.NewFromFloat(0.30)
	communityFamilies = decimal.NewFromInt(1000)
)

const (
	defaultChildAge = 8.0
	// The protective factor saturates at this many weekly hours.
	protectionFullAtHours = 10.0
)

// WeightedValue splits weekly hours by activity and applies the weights.
// Hours not attributed to any activity count as general time.
func WeightedValue(educational, health, connection, total float64) (float64, domain.WeightedBreakdown) {
	other := math.Max(0, total-educational-health-connection)
	b := domain.WeightedBreakdown{
		Educational: educational * weightEducational,
		Health:      health * weightHealth,
		Connection:  connection * weightConnection,
		General:     other * weightGeneral,
	}
	return b.Educational + b.Health + b.Connection + b.General, b
}

// AnnualROI is the yearly social value of the weekly hours for all children.
func AnnualROI(weeklyHours, weightedMultiplier float64, children int) decimal.Decimal {
	return decimal.NewFromFloat(weeklyHours).
		Mul(decimal.NewFromInt(52)).
		Mul(valuePerHour).
		Mul(decimal.NewFromFloat(weightedMultiplier)).
		Mul(decimal.NewFromInt(int64(children))).
		Round(0)
}

// LifetimeROI accumulates the annual value until the children turn 18.
func LifetimeROI(annual decimal.Decimal, averageChildAge float64) decimal.Decimal {
	years := math.Max(0, 18-averageChildAge)
	return annual.Mul(decimal.NewFromFloat(years)).Round(0)
}

// CalculatePublicSavings scales the avoided public costs by a protective
// factor that saturates at ten weekly hours.
func CalculatePublicSavings(weeklyHours float64, children int) domain.PublicSavings {
	factor := decimal.NewFromFloat(math.Min(1, weeklyHours/protectionFullAtHours))
	n := decimal.NewFromInt(int64(children))

	mental := mentalHealthPrevention.Mul(factor).Mul(n).Round(0)
	substance := substanceAbusePrevention.Mul(factor).Mul(decimal.NewFromFloat(0.5)).Mul(n).Round(0)
	education := educationalDropout.Mul(factor).Mul(decimal.NewFromFloat(0.1)).Mul(n).Round(0)

	return domain.PublicSavings{
		MentalHealth:   domain.NewMoney(mental),
		SubstanceAbuse: domain.NewMoney(substance),
		Education:      domain.NewMoney(education),
		Total:          domain.NewMoney(mental.Add(substance).Add(education)),
	}
}

// CalculateCommunityImpact scales the annual value to 1000 families.
func CalculateCommunityImpact(annual decimal.Decimal) domain.CommunityImpact {
	scaled := annual.Mul(communityFamilies)
	return domain.CommunityImpact{
		PublicHealth:      domain.NewMoney(scaled.Mul(sharePublicHealth).Round(0)),
		JusticeSavings:    domain.NewMoney(scaled.Mul(shareJustice).Round(0)),
		EducationGains:    domain.NewMoney(scaled.Mul(shareEducation).Round(0)),
		ProductivityGains: domain.NewMoney(scaled.Mul(shareProductivity).Round(0)),
		TotalImpact:       domain.NewMoney(scaled),
	}
}

// PerHourValue is the social value of one weighted hour.
func PerHourValue(weightedMultiplier float64) decimal.Decimal {
	return valuePerHour.Mul(decimal.NewFromFloat(weightedMultiplier)).Round(0)
}

// SocialROICategory buckets weekly hours. Each bound is exclusive.
func SocialROICategory(weeklyHours float64) domain.Category {
	switch {
	case weeklyHours < 3:
		return domain.CategoryLow
	case weeklyHours < 6:
		return domain.CategoryMedium
	case weeklyHours < 10:
		return domain.CategoryHigh
	default:
		return domain.CategoryExcellent
	}
}

// SocialROIScore gives up to 70 points for hours (full at 15 a week) plus a
// bonus for time spent on high-weight activities.
func SocialROIScore(weeklyHours, weightedMultiplier float64) int {
	hoursScore := math.Min(70, weeklyHours/15*70)
	bonus := (weightedMultiplier - 1) * 100
	return int(math.Min(100, numfmt.Round(hoursScore+bonus)))
}

// AlternativeInterventions compares parental time with paid alternatives.
func AlternativeInterventions() []domain.AlternativeIntervention {
	return []domain.AlternativeIntervention{
		{Intervention: "Tempo parental de qualidade", CostPerChild: domain.NewMoney(decimal.Zero), Effectiveness: "Alta", ROI: "Infinito"},
		{Intervention: "Terapia infantil", CostPerChild: domain.NewMoney(decimal.NewFromInt(12000)), Effectiveness: "Moderada-Alta", ROI: "3:1"},
		{Intervention: "Escola particular", CostPerChild: domain.NewMoney(decimal.NewFromInt(30000)), Effectiveness: "Moderada", ROI: "2:1"},
		{Intervention: "Programa social", CostPerChild: domain.NewMoney(decimal.NewFromInt(5000)), Effectiveness: "Variável", ROI: "1.5:1"},
	}
}

func socialROIRecommendations(weekly, educational, health, connection float64) []string {
	var recs []string
	if weekly < 6 {
		recs = append(recs, "Pesquisas mostram que 6+ horas semanais trazem benefícios significativos - tente adicionar mais tempo")
	}
	if educational < 2 {
		recs = append(recs, "Adicione leitura compartilhada - tem o maior impacto no desenvolvimento cognitivo (peso 1.5x)")
	}
	if connection < 3 {
		recs = append(recs, "Refeições em família e conversas significativas fortalecem vínculos emocionais")
	}
	if health < 2 {
		recs = append(recs, "Atividades físicas juntos promovem saúde e momentos memoráveis")
	}
	if weekly >= 10 {
		recs = append(recs, "Excelente investimento! Considere documentar esses momentos para criar memórias duradouras")
	}
	recs = append(recs, "Cada hora de qualidade gera aproximadamente R$100 em valor social evitando custos futuros")
	return limitStrings(recs, 4)
}

func socialROIInsights(annual, lifetime, perHour decimal.Decimal, savings domain.PublicSavings, children int) []string {
	insights := []string{
		fmt.Sprintf("Seu investimento anual em tempo parental vale aproximadamente %s", numfmt.Currency(annual)),
		fmt.Sprintf("Cada hora de qualidade gera %s em valor social", numfmt.Currency(perHour)),
	}
	if lifetime.IsPositive() {
		insights = append(insights, fmt.Sprintf("Até seus filhos completarem 18 anos: %s em valor acumulado", numfmt.Currency(lifetime)))
	}
	insights = append(insights, fmt.Sprintf("Economia potencial em saúde mental: %s/ano", numfmt.Currency(savings.MentalHealth.Decimal)))
	if children > 1 {
		insights = append(insights, fmt.Sprintf("Com %d filhos, o impacto é multiplicado para toda a família", children))
	}
	return insights
}

// CalculateSocialROI values weekly parental time in reais.
func CalculateSocialROI(in domain.SocialROIInput) (domain.SocialROIResult, error) {
	if err := in.Validate(); err != nil {
		return domain.SocialROIResult{}, err
	}

	weekly := in.WeeklyHours()
	children := in.Children()
	weighted, breakdown := WeightedValue(in.EducationalHours(), in.HealthHours(), in.ConnectionHours(), weekly)

	multiplier := 1.0
	if weekly > 0 {
		multiplier = weighted / weekly
	}

	age := defaultChildAge
	if in.AverageChildAge != nil {
		age = *in.AverageChildAge
	}

	annual := AnnualROI(weekly, multiplier, children)
	lifetime := LifetimeROI(annual, age)
	perHour := PerHourValue(multiplier)
	savings := CalculatePublicSavings(weekly, children)
	community := CalculateCommunityImpact(annual)
	category := SocialROICategory(weekly)

	return domain.SocialROIResult{
		Score:              SocialROIScore(weekly, multiplier),
		Category:           category,
		CategoryLabel:      domain.SocialROILabel(category),
		TotalROI:           domain.NewMoney(annual),
		LifetimeROI:        domain.NewMoney(lifetime),
		PerFamilyBenefit:   domain.NewMoney(perHour),
		SocietalImpact:     community.TotalImpact,
		WeightedMultiplier: numfmt.Round2(multiplier),
		Breakdown:          breakdown,
		PublicSavings:      savings,
		CommunityImpact:    community,
		Recommendations:    socialROIRecommendations(weekly, in.EducationalHours(), in.HealthHours(), in.ConnectionHours()),
		Insights:           socialROIInsights(annual, lifetime, perHour, savings, children),
	}, nil
}
