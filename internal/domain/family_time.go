package domain

// FamilyTimeInput captures the minutes a parent spends with the family.
type FamilyTimeInput struct {
	WeekdayMinutes    float64 `yaml:"weekday_minutes" json:"weekdayMinutes"`
	WeekendMinutes    float64 `yaml:"weekend_minutes" json:"weekendMinutes"`
	QualityMultiplier float64 `yaml:"quality_multiplier" json:"qualityMultiplier"`
	FamilySize        int     `yaml:"family_size" json:"familySize"`
}

// Validate checks every field against its allowed range.
func (in FamilyTimeInput) Validate() error {
	var v validator
	v.rangeCheck("weekdayMinutes", in.WeekdayMinutes, 0, 480,
		"O tempo não pode ser negativo", "O tempo máximo é 8 horas (480 minutos) por dia")
	v.rangeCheck("weekendMinutes", in.WeekendMinutes, 0, 960,
		"O tempo não pode ser negativo", "O tempo máximo é 16 horas (960 minutos) por dia")
	v.rangeCheck("qualityMultiplier", in.QualityMultiplier, 0.5, 2,
		"O multiplicador mínimo é 0.5", "O multiplicador máximo é 2")
	v.intRange("familySize", in.FamilySize, 1, 10,
		"A família deve ter pelo menos 1 filho", "O máximo de filhos é 10")
	return v.err()
}

// FamilyTimeResult is the outcome of the family time calculator. Totals are
// in minutes.
type FamilyTimeResult struct {
	Score               int      `json:"score"`
	Category            Category `json:"category"`
	CategoryLabel       string   `json:"categoryLabel"`
	DailyAverage        float64  `json:"dailyAverage"`
	WeeklyTotal         int      `json:"weeklyTotal"`
	MonthlyTotal        int      `json:"monthlyTotal"`
	YearlyProjection    int      `json:"yearlyProjection"`
	NationalComparison  int      `json:"nationalComparison"`
	ProgressToExcellent int      `json:"progressToExcellent"`
	Recommendations     []string `json:"recommendations"`
	Insights            []string `json:"insights"`
}
