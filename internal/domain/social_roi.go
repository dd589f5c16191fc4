package domain

import "github.com/shopspring/decimal"

// SocialROIInput keeps the field names of the public form. The values are
// repurposed: ProgramInvestment is total weekly quality hours,
// FamiliesReached the number of children, and the remaining three the
// weekly hours of educational, health and connection activities.
type SocialROIInput struct {
	ProgramInvestment    float64 `yaml:"program_investment" json:"programInvestment"`
	FamiliesReached      int     `yaml:"families_reached" json:"familiesReached"`
	AvgIncomeIncrease    float64 `yaml:"avg_income_increase" json:"avgIncomeIncrease"`
	HealthSavings        float64 `yaml:"health_savings" json:"healthSavings"`
	EducationImprovement float64 `yaml:"education_improvement" json:"educationImprovement"`

	// AverageChildAge drives the lifetime projection. Defaults to 8.
	AverageChildAge *float64 `yaml:"average_child_age,omitempty" json:"averageChildAge,omitempty"`
}

// WeeklyHours is the total weekly quality time.
func (in SocialROIInput) WeeklyHours() float64 { return in.ProgramInvestment }

// Children is the number of children reached.
func (in SocialROIInput) Children() int { return in.FamiliesReached }

// EducationalHours is the weekly time spent on reading and homework.
func (in SocialROIInput) EducationalHours() float64 { return in.AvgIncomeIncrease }

// HealthHours is the weekly time spent on sports and outdoor activities.
func (in SocialROIInput) HealthHours() float64 { return in.HealthSavings }

// ConnectionHours is the weekly time spent on meals and conversations.
func (in SocialROIInput) ConnectionHours() float64 { return in.EducationImprovement }

// Validate checks every field against its allowed range.
func (in SocialROIInput) Validate() error {
	var v validator
	v.rangeCheck("programInvestment", in.ProgramInvestment, 0, 1000,
		"O investimento não pode ser negativo", "O máximo é 1000 horas semanais")
	v.intRange("familiesReached", in.FamiliesReached, 1, 10,
		"Mínimo de 1 filho", "Máximo de 10 filhos")
	v.rangeCheck("avgIncomeIncrease", in.AvgIncomeIncrease, 0, 100,
		"O valor não pode ser negativo", "Máximo de 100 horas")
	v.rangeCheck("healthSavings", in.HealthSavings, 0, 100,
		"O valor não pode ser negativo", "Máximo de 100 horas")
	v.rangeCheck("educationImprovement", in.EducationImprovement, 0, 100,
		"O valor não pode ser negativo", "Máximo de 100 horas")
	if in.AverageChildAge != nil {
		v.rangeCheck("averageChildAge", *in.AverageChildAge, 0, 17,
			"A idade não pode ser negativa", "A idade máxima é 17 anos")
	}
	return v.err()
}

// Money is an amount in reais. It encodes as a JSON number rather than the
// quoted string decimal.Decimal writes, and decodes from either form.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// WeightedBreakdown is the weighted hours per activity group.
type WeightedBreakdown struct {
	Educational float64 `json:"educational"`
	Health      float64 `json:"health"`
	Connection  float64 `json:"connection"`
	General     float64 `json:"general"`
}

// PublicSavings estimates yearly public costs avoided, in reais.
type PublicSavings struct {
	MentalHealth   Money `json:"mentalHealth"`
	SubstanceAbuse Money `json:"substanceAbuse"`
	Education      Money `json:"education"`
	Total          Money `json:"total"`
}

// CommunityImpact scales the annual value to 1000 families.
type CommunityImpact struct {
	PublicHealth      Money `json:"publicHealth"`
	JusticeSavings    Money `json:"justiceSavings"`
	EducationGains    Money `json:"educationGains"`
	ProductivityGains Money `json:"productivityGains"`
	TotalImpact       Money `json:"totalImpact"`
}

// AlternativeIntervention compares parental time with paid interventions.
type AlternativeIntervention struct {
	Intervention  string `json:"intervention"`
	CostPerChild  Money  `json:"costPerChild"`
	Effectiveness string `json:"effectiveness"`
	ROI           string `json:"roi"`
}

// SocialROIResult is the outcome of the social return calculator.
type SocialROIResult struct {
	Score              int               `json:"score"`
	Category           Category          `json:"category"`
	CategoryLabel      string            `json:"categoryLabel"`
	TotalROI           Money             `json:"totalROI"`
	LifetimeROI        Money             `json:"lifetimeROI"`
	PerFamilyBenefit   Money             `json:"perFamilyBenefit"`
	SocietalImpact     Money             `json:"societalImpact"`
	WeightedMultiplier float64           `json:"weightedMultiplier"`
	Breakdown          WeightedBreakdown `json:"breakdown"`
	PublicSavings      PublicSavings     `json:"publicSavings"`
	CommunityImpact    CommunityImpact   `json:"communityImpact"`
	Recommendations    []string          `json:"recommendations"`
	Insights           []string          `json:"insights"`
}
