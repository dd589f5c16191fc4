package domain

// RiskLevel grades the developmental risk of a screen time pattern.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Label returns the Portuguese display label.
func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "Baixo"
	case RiskModerate:
		return "Moderado"
	case RiskHigh:
		return "Elevado"
	case RiskCritical:
		return "Crítico"
	default:
		return string(r)
	}
}

// ScreenTimeInput describes a child's daily screen habits.
type ScreenTimeInput struct {
	ChildAge           float64 `yaml:"child_age" json:"childAge"`
	DailyScreenMinutes float64 `yaml:"daily_screen_minutes" json:"dailyScreenMinutes"`
	EducationalPercent float64 `yaml:"educational_percent" json:"educationalPercent"`
	CoViewingPercent   float64 `yaml:"co_viewing_percent" json:"coViewingPercent"`
	BeforeBedMinutes   float64 `yaml:"before_bed_minutes" json:"beforeBedMinutes"`
}

// Validate checks every field against its allowed range.
func (in ScreenTimeInput) Validate() error {
	var v validator
	v.rangeCheck("childAge", in.ChildAge, 2, 17,
		"A idade mínima é 2 anos", "A idade máxima é 17 anos")
	v.rangeCheck("dailyScreenMinutes", in.DailyScreenMinutes, 0, 960,
		"O tempo não pode ser negativo", "O tempo máximo é 16 horas (960 minutos) por dia")
	v.rangeCheck("educationalPercent", in.EducationalPercent, 0, 100,
		"A porcentagem mínima é 0%", "A porcentagem máxima é 100%")
	v.rangeCheck("coViewingPercent", in.CoViewingPercent, 0, 100,
		"A porcentagem mínima é 0%", "A porcentagem máxima é 100%")
	v.rangeCheck("beforeBedMinutes", in.BeforeBedMinutes, 0, 180,
		"O tempo não pode ser negativo", "O tempo máximo antes de dormir é 3 horas")
	return v.err()
}

// RiskMultipliers are the habit adjustments applied to the base risk.
type RiskMultipliers struct {
	Educational float64 `json:"educational"`
	CoViewing   float64 `json:"coViewing"`
	BeforeBed   float64 `json:"beforeBed"`
	YoungChild  float64 `json:"youngChild"`
	Total       float64 `json:"total"`
}

// OpportunityCost splits excess screen minutes across displaced activities.
type OpportunityCost struct {
	FreePlay         int `json:"freePlay"`
	FamilyTime       int `json:"familyTime"`
	PhysicalActivity int `json:"physicalActivity"`
	Sleep            int `json:"sleep"`
}

// ScreenProjections extrapolates daily minutes over longer horizons.
type ScreenProjections struct {
	WeeklyHours  int     `json:"weeklyHours"`
	MonthlyHours int     `json:"monthlyHours"`
	YearlyHours  int     `json:"yearlyHours"`
	YearlyDays   float64 `json:"yearlyDays"`
	HoursUntil18 int     `json:"hoursUntil18"`
	DaysUntil18  float64 `json:"daysUntil18"`
}

// ScreenTimeResult is the outcome of the screen time calculator.
type ScreenTimeResult struct {
	Score           int               `json:"score"`
	Category        Category          `json:"category"`
	RiskLevel       RiskLevel         `json:"riskLevel"`
	RiskScore       float64           `json:"riskScore"`
	AgeAppropriate  bool              `json:"ageAppropriate"`
	SuggestedLimit  int               `json:"suggestedLimit"`
	AgeGroup        string            `json:"ageGroup"`
	NationalAverage int               `json:"nationalAverage"`
	Multipliers     RiskMultipliers   `json:"multipliers"`
	OpportunityCost OpportunityCost   `json:"opportunityCost"`
	Projections     ScreenProjections `json:"projections"`
	Recommendations []string          `json:"recommendations"`
	Insights        []string          `json:"insights"`
}
