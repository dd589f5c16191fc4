package domain

// MealDuration is the usual length of a family meal.
type MealDuration string

const (
	DurationLess10 MealDuration = "less10"
	Duration10To20 MealDuration = "10to20"
	Duration20To30 MealDuration = "20to30"
	DurationMore30 MealDuration = "more30"
)

// Minutes is the representative length used for connection time.
func (d MealDuration) Minutes() int {
	switch d {
	case DurationLess10:
		return 8
	case Duration10To20:
		return 15
	case Duration20To30:
		return 25
	case DurationMore30:
		return 40
	default:
		return 0
	}
}

// Label returns the Portuguese display label.
func (d MealDuration) Label() string {
	switch d {
	case DurationLess10:
		return "Menos de 10 minutos"
	case Duration10To20:
		return "10-20 minutos"
	case Duration20To30:
		return "20-30 minutos"
	case DurationMore30:
		return "Mais de 30 minutos"
	default:
		return string(d)
	}
}

// ScreensPresence is how often screens are at the table.
type ScreensPresence string

const (
	ScreensNever     ScreensPresence = "never"
	ScreensSometimes ScreensPresence = "sometimes"
	ScreensAlways    ScreensPresence = "always"
)

// Label returns the Portuguese display label.
func (s ScreensPresence) Label() string {
	switch s {
	case ScreensNever:
		return "Nunca"
	case ScreensSometimes:
		return "As vezes"
	case ScreensAlways:
		return "Sempre"
	default:
		return string(s)
	}
}

// MealsCategory buckets the weekly number of shared meals.
type MealsCategory string

const (
	MealsDisconnected MealsCategory = "disconnected"
	MealsBuilding     MealsCategory = "building"
	MealsEngaged      MealsCategory = "engaged"
	MealsConnected    MealsCategory = "connected"
)

// Label returns the Portuguese display label.
func (m MealsCategory) Label() string {
	switch m {
	case MealsDisconnected:
		return "Familia Desconectada"
	case MealsBuilding:
		return "Em Construcao"
	case MealsEngaged:
		return "Familia Engajada"
	case MealsConnected:
		return "Familia Conectada"
	default:
		return string(m)
	}
}

// Category maps the meals bucket onto the shared scale.
func (m MealsCategory) Category() Category {
	switch m {
	case MealsBuilding:
		return CategoryMedium
	case MealsEngaged:
		return CategoryHigh
	case MealsConnected:
		return CategoryExcellent
	default:
		return CategoryLow
	}
}

// MealsInput describes a family's weekly meal routine.
type MealsInput struct {
	BreakfastPerWeek    int             `yaml:"breakfast_per_week" json:"breakfastPerWeek"`
	LunchPerWeek        int             `yaml:"lunch_per_week" json:"lunchPerWeek"`
	DinnerPerWeek       int             `yaml:"dinner_per_week" json:"dinnerPerWeek"`
	AverageDuration     MealDuration    `yaml:"average_duration" json:"averageDuration"`
	ScreensPresent      ScreensPresence `yaml:"screens_present" json:"screensPresent"`
	BothParentsPresent  bool            `yaml:"both_parents_present" json:"bothParentsPresent"`
	ConversationQuality int             `yaml:"conversation_quality" json:"conversationQuality"`
}

// TotalMeals is the number of shared meals per week.
func (in MealsInput) TotalMeals() int {
	return in.BreakfastPerWeek + in.LunchPerWeek + in.DinnerPerWeek
}

// Validate checks every field against its allowed range.
func (in MealsInput) Validate() error {
	var v validator
	v.intRange("breakfastPerWeek", in.BreakfastPerWeek, 0, 7, "Minimo e 0", "Maximo e 7 cafes da manha por semana")
	v.intRange("lunchPerWeek", in.LunchPerWeek, 0, 7, "Minimo e 0", "Maximo e 7 almocos por semana")
	v.intRange("dinnerPerWeek", in.DinnerPerWeek, 0, 7, "Minimo e 0", "Maximo e 7 jantares por semana")
	if in.AverageDuration.Minutes() == 0 {
		v.add("averageDuration", "Duracao deve ser less10, 10to20, 20to30 ou more30")
	}
	switch in.ScreensPresent {
	case ScreensNever, ScreensSometimes, ScreensAlways:
	default:
		v.add("screensPresent", "Telas deve ser never, sometimes ou always")
	}
	v.intRange("conversationQuality", in.ConversationQuality, 1, 5, "Minimo e 1", "Maximo e 5")
	return v.err()
}

// ProtectionFactor is a risk reduction percentage (negative is protective).
type ProtectionFactor struct {
	Current     int    `json:"current"`
	Potential   int    `json:"potential"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ProtectionFactors groups the research-backed risk reductions.
type ProtectionFactors struct {
	Obesity         ProtectionFactor `json:"obesity"`
	UnhealthyEating ProtectionFactor `json:"unhealthyEating"`
	EatingDisorders ProtectionFactor `json:"eatingDisorders"`
	SubstanceUse    ProtectionFactor `json:"substanceUse"`
	MentalHealth    ProtectionFactor `json:"mentalHealth"`
}

// ImpactOfOne describes the gain of one extra weekly meal.
type ImpactOfOne struct {
	YearlyHours        int    `json:"yearlyHours"`
	VocabularyExposure int    `json:"vocabularyExposure"`
	RiskReduction      int    `json:"riskReduction"`
	Description        string `json:"description"`
}

// MealsComparison places the family against national references.
type MealsComparison struct {
	YourFamily             int `json:"yourFamily"`
	NationalAverage        int `json:"nationalAverage"`
	HighConnectionFamilies int `json:"highConnectionFamilies"`
	Percentile             int `json:"percentile"`
}

// WeeklyMilestone is one step of the four week plan.
type WeeklyMilestone struct {
	Week int    `json:"week"`
	Goal int    `json:"goal"`
	Tip  string `json:"tip"`
}

// ActionPlan is the four week path toward the goal.
type ActionPlan struct {
	CurrentMeals int               `json:"currentMeals"`
	GoalMeals    int               `json:"goalMeals"`
	WeeklyPlan   []WeeklyMilestone `json:"weeklyPlan"`
	GoldenRules  []string          `json:"goldenRules"`
}

// ConversationStarter is a table question grouped by theme.
type ConversationStarter struct {
	Category string `json:"category"`
	Question string `json:"question"`
}

// MealsStatus is the headline of the meals result.
type MealsStatus struct {
	TotalMealsPerWeek      int           `json:"totalMealsPerWeek"`
	Category               MealsCategory `json:"category"`
	CategoryLabel          string        `json:"categoryLabel"`
	TotalConnectionMinutes int           `json:"totalConnectionMinutes"`
	QualityScore           int           `json:"qualityScore"`
	QualityMultiplier      float64       `json:"qualityMultiplier"`
}

// YearlyProjection converts weekly minutes to a year.
type YearlyProjection struct {
	Hours int     `json:"hours"`
	Days  float64 `json:"days"`
}

// MealsResult is the outcome of the family meals calculator.
type MealsResult struct {
	Score                int                   `json:"score"`
	Category             Category              `json:"category"`
	CurrentStatus        MealsStatus           `json:"currentStatus"`
	ProtectionFactors    ProtectionFactors     `json:"protectionFactors"`
	ImpactOfOne          ImpactOfOne           `json:"impactOfOne"`
	NationalComparison   MealsComparison       `json:"nationalComparison"`
	ActionPlan           ActionPlan            `json:"actionPlan"`
	ConversationStarters []ConversationStarter `json:"conversationStarters"`
	YearlyProjection     YearlyProjection      `json:"yearlyProjection"`
	Insights             []string              `json:"insights"`
	Recommendations      []string              `json:"recommendations"`
	Sources              []string              `json:"sources"`
}
