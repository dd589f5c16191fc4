package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
)

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}

func clampInt(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

// AddFamilyTime changes the daily minutes of family time. Negative values
// remove time; results are clamped to the accepted ranges.
type AddFamilyTime struct {
	WeekdayMinutes float64
	WeekendMinutes float64
}

func (t *AddFamilyTime) Name() string { return "add_family_time" }

func (t *AddFamilyTime) Description() string {
	return fmt.Sprintf("%+g min por dia útil e %+g min por dia de fim de semana", t.WeekdayMinutes, t.WeekendMinutes)
}

func (t *AddFamilyTime) Validate(base domain.Input) error {
	if _, ok := base.(*domain.FamilyTimeInput); !ok {
		return wrongInput(t, domain.CalculatorFamilyTime, base)
	}
	if t.WeekdayMinutes == 0 && t.WeekendMinutes == 0 {
		return NewTransformError(t.Name(), "validate", "weekday or weekend minutes must be non-zero", nil)
	}
	return nil
}

func (t *AddFamilyTime) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.FamilyTimeInput)
	in.WeekdayMinutes = clamp(in.WeekdayMinutes+t.WeekdayMinutes, 0, 480)
	in.WeekendMinutes = clamp(in.WeekendMinutes+t.WeekendMinutes, 0, 960)
	return &in, nil
}

// SetQualityMultiplier sets how focused the family time is.
type SetQualityMultiplier struct {
	Multiplier float64
}

func (t *SetQualityMultiplier) Name() string { return "set_quality" }

func (t *SetQualityMultiplier) Description() string {
	return fmt.Sprintf("Qualidade do tempo juntos em %gx", t.Multiplier)
}

func (t *SetQualityMultiplier) Validate(base domain.Input) error {
	if _, ok := base.(*domain.FamilyTimeInput); !ok {
		return wrongInput(t, domain.CalculatorFamilyTime, base)
	}
	if t.Multiplier < 0.5 || t.Multiplier > 2 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("multiplier must be between 0.5 and 2, got %g", t.Multiplier), nil)
	}
	return nil
}

func (t *SetQualityMultiplier) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.FamilyTimeInput)
	in.QualityMultiplier = t.Multiplier
	return &in, nil
}

// AdjustScreenTime changes the daily screen minutes. Minutes before bed never
// exceed the daily total.
type AdjustScreenTime struct {
	Minutes float64
}

func (t *AdjustScreenTime) Name() string { return "adjust_screen_time" }

func (t *AdjustScreenTime) Description() string {
	return fmt.Sprintf("%+g min de tela por dia", t.Minutes)
}

func (t *AdjustScreenTime) Validate(base domain.Input) error {
	if _, ok := base.(*domain.ScreenTimeInput); !ok {
		return wrongInput(t, domain.CalculatorScreenTime, base)
	}
	if t.Minutes == 0 {
		return NewTransformError(t.Name(), "validate", "minutes must be non-zero", nil)
	}
	return nil
}

func (t *AdjustScreenTime) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.ScreenTimeInput)
	in.DailyScreenMinutes = clamp(in.DailyScreenMinutes+t.Minutes, 0, 960)
	in.BeforeBedMinutes = min(in.BeforeBedMinutes, in.DailyScreenMinutes)
	return &in, nil
}

// SetScreenHabits overrides screen habits. Nil fields are left unchanged.
type SetScreenHabits struct {
	EducationalPercent *float64
	CoViewingPercent   *float64
	BeforeBedMinutes   *float64
}

func (t *SetScreenHabits) Name() string { return "set_screen_habits" }

func (t *SetScreenHabits) Description() string {
	desc := "Hábitos de tela:"
	if t.EducationalPercent != nil {
		desc += fmt.Sprintf(" %g%% educativo", *t.EducationalPercent)
	}
	if t.CoViewingPercent != nil {
		desc += fmt.Sprintf(" %g%% assistido junto", *t.CoViewingPercent)
	}
	if t.BeforeBedMinutes != nil {
		desc += fmt.Sprintf(" %g min antes de dormir", *t.BeforeBedMinutes)
	}
	return desc
}

func (t *SetScreenHabits) Validate(base domain.Input) error {
	if _, ok := base.(*domain.ScreenTimeInput); !ok {
		return wrongInput(t, domain.CalculatorScreenTime, base)
	}
	if t.EducationalPercent == nil && t.CoViewingPercent == nil && t.BeforeBedMinutes == nil {
		return NewTransformError(t.Name(), "validate", "no habit to change", nil)
	}
	for label, p := range map[string]*float64{"educational": t.EducationalPercent, "coviewing": t.CoViewingPercent} {
		if p != nil && (*p < 0 || *p > 100) {
			return NewTransformError(t.Name(), "validate", fmt.Sprintf("%s percent must be between 0 and 100, got %g", label, *p), nil)
		}
	}
	if t.BeforeBedMinutes != nil && (*t.BeforeBedMinutes < 0 || *t.BeforeBedMinutes > 180) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("before-bed minutes must be between 0 and 180, got %g", *t.BeforeBedMinutes), nil)
	}
	return nil
}

func (t *SetScreenHabits) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.ScreenTimeInput)
	if t.EducationalPercent != nil {
		in.EducationalPercent = *t.EducationalPercent
	}
	if t.CoViewingPercent != nil {
		in.CoViewingPercent = *t.CoViewingPercent
	}
	if t.BeforeBedMinutes != nil {
		in.BeforeBedMinutes = *t.BeforeBedMinutes
	}
	return &in, nil
}

// AddMeals changes the weekly count of shared meals, clamped to 0-7 each.
type AddMeals struct {
	Breakfast int
	Lunch     int
	Dinner    int
}

func (t *AddMeals) Name() string { return "add_meals" }

func (t *AddMeals) Description() string {
	return fmt.Sprintf("%+d cafés, %+d almoços e %+d jantares por semana", t.Breakfast, t.Lunch, t.Dinner)
}

func (t *AddMeals) Validate(base domain.Input) error {
	if _, ok := base.(*domain.MealsInput); !ok {
		return wrongInput(t, domain.CalculatorMeals, base)
	}
	if t.Breakfast == 0 && t.Lunch == 0 && t.Dinner == 0 {
		return NewTransformError(t.Name(), "validate", "at least one meal count must be non-zero", nil)
	}
	return nil
}

func (t *AddMeals) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.MealsInput)
	in.BreakfastPerWeek = clampInt(in.BreakfastPerWeek+t.Breakfast, 0, 7)
	in.LunchPerWeek = clampInt(in.LunchPerWeek+t.Lunch, 0, 7)
	in.DinnerPerWeek = clampInt(in.DinnerPerWeek+t.Dinner, 0, 7)
	return &in, nil
}

// SetMealHabits overrides how meals happen. Nil fields are left unchanged.
type SetMealHabits struct {
	Duration            *domain.MealDuration
	Screens             *domain.ScreensPresence
	BothParentsPresent  *bool
	ConversationQuality *int
}

func (t *SetMealHabits) Name() string { return "set_meal_habits" }

func (t *SetMealHabits) Description() string {
	desc := "Refeições:"
	if t.Duration != nil {
		desc += " " + t.Duration.Label()
	}
	if t.Screens != nil {
		desc += " telas " + t.Screens.Label()
	}
	if t.BothParentsPresent != nil && *t.BothParentsPresent {
		desc += " com ambos os pais"
	}
	if t.ConversationQuality != nil {
		desc += fmt.Sprintf(" conversa nota %d", *t.ConversationQuality)
	}
	return desc
}

func (t *SetMealHabits) Validate(base domain.Input) error {
	if _, ok := base.(*domain.MealsInput); !ok {
		return wrongInput(t, domain.CalculatorMeals, base)
	}
	if t.Duration == nil && t.Screens == nil && t.BothParentsPresent == nil && t.ConversationQuality == nil {
		return NewTransformError(t.Name(), "validate", "no habit to change", nil)
	}
	if t.Duration != nil && t.Duration.Minutes() == 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown meal duration %q", *t.Duration), nil)
	}
	if t.Screens != nil {
		switch *t.Screens {
		case domain.ScreensNever, domain.ScreensSometimes, domain.ScreensAlways:
		default:
			return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown screens value %q", *t.Screens), nil)
		}
	}
	if t.ConversationQuality != nil && (*t.ConversationQuality < 1 || *t.ConversationQuality > 5) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("conversation quality must be between 1 and 5, got %d", *t.ConversationQuality), nil)
	}
	return nil
}

func (t *SetMealHabits) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.MealsInput)
	if t.Duration != nil {
		in.AverageDuration = *t.Duration
	}
	if t.Screens != nil {
		in.ScreensPresent = *t.Screens
	}
	if t.BothParentsPresent != nil {
		in.BothParentsPresent = *t.BothParentsPresent
	}
	if t.ConversationQuality != nil {
		in.ConversationQuality = *t.ConversationQuality
	}
	return &in, nil
}

// AddWeeklyHours changes the weekly hours of quality time in the social
// return projection.
type AddWeeklyHours struct {
	Hours float64
}

func (t *AddWeeklyHours) Name() string { return "add_weekly_hours" }

func (t *AddWeeklyHours) Description() string {
	return fmt.Sprintf("%+g horas semanais de tempo de qualidade", t.Hours)
}

func (t *AddWeeklyHours) Validate(base domain.Input) error {
	if _, ok := base.(*domain.SocialROIInput); !ok {
		return wrongInput(t, domain.CalculatorSocialROI, base)
	}
	if t.Hours == 0 {
		return NewTransformError(t.Name(), "validate", "hours must be non-zero", nil)
	}
	return nil
}

func (t *AddWeeklyHours) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.SocialROIInput)
	in.ProgramInvestment = clamp(in.ProgramInvestment+t.Hours, 0, 1000)
	return &in, nil
}

// ScaleWeeklyHours changes the weekly hours and scales the educational,
// health and connection hours by the same factor, so the share of each
// activity is unchanged. With no weekly hours the split is undefined and
// the new hours count as general time.
type ScaleWeeklyHours struct {
	Hours float64
}

func (t *ScaleWeeklyHours) Name() string { return "scale_weekly_hours" }

func (t *ScaleWeeklyHours) Description() string {
	return fmt.Sprintf("%+g horas semanais mantendo a divisão entre atividades", t.Hours)
}

func (t *ScaleWeeklyHours) Validate(base domain.Input) error {
	if _, ok := base.(*domain.SocialROIInput); !ok {
		return wrongInput(t, domain.CalculatorSocialROI, base)
	}
	if t.Hours == 0 {
		return NewTransformError(t.Name(), "validate", "hours must be non-zero", nil)
	}
	return nil
}

func (t *ScaleWeeklyHours) Apply(base domain.Input) (domain.Input, error) {
	in := *base.(*domain.SocialROIInput)
	total := in.ProgramInvestment
	next := clamp(total+t.Hours, 0, 1000)
	if total > 0 {
		factor := next / total
		in.AvgIncomeIncrease = clamp(in.AvgIncomeIncrease*factor, 0, 100)
		in.HealthSavings = clamp(in.HealthSavings*factor, 0, 100)
		in.EducationImprovement = clamp(in.EducationImprovement*factor, 0, 100)
	} else {
		in.AvgIncomeIncrease, in.HealthSavings, in.EducationImprovement = 0, 0, 0
	}
	in.ProgramInvestment = next
	return &in, nil
}

// WeeklyHoursHeadroom is how many hours ScaleWeeklyHours can add before the
// total or one of the scaled activity fields leaves its range.
func WeeklyHoursHeadroom(in *domain.SocialROIInput) float64 {
	total := in.ProgramInvestment
	largest := max(in.AvgIncomeIncrease, in.HealthSavings, in.EducationImprovement)
	if total <= 0 || largest <= 0 {
		return 1000 - total
	}
	return min(1000, total*100/largest) - total
}

// AddDailyMoments logs one moment per day for Days days starting at Start.
type AddDailyMoments struct {
	Type     domain.MomentType
	Duration float64
	Days     int
	Start    time.Time
}

func (t *AddDailyMoments) Name() string { return "add_daily_moments" }

func (t *AddDailyMoments) Description() string {
	return fmt.Sprintf("%d dias de %g min de %s a partir de %s", t.Days, t.Duration, t.Type, t.Start.Format(time.DateOnly))
}

func (t *AddDailyMoments) Validate(base domain.Input) error {
	if _, ok := base.(*domain.MomentsInput); !ok {
		return wrongInput(t, domain.CalculatorMoments, base)
	}
	if !t.Type.IsValid() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown moment type %q", t.Type), nil)
	}
	if t.Days < 1 || t.Days > 31 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("days must be between 1 and 31, got %d", t.Days), nil)
	}
	if t.Start.IsZero() {
		return NewTransformError(t.Name(), "validate", "start date is required", nil)
	}
	return nil
}

func (t *AddDailyMoments) Apply(base domain.Input) (domain.Input, error) {
	copied, err := CopyInput(base)
	if err != nil {
		return nil, err
	}
	in := copied.(*domain.MomentsInput)
	for d := 0; d < t.Days; d++ {
		in.Moments = append(in.Moments, domain.MomentInput{
			Type:     t.Type,
			Duration: t.Duration,
			Date:     t.Start.AddDate(0, 0, d).Format(time.DateOnly),
		})
	}
	return in, nil
}

// SetMomentsTarget sets the weekly goal of connection moments.
type SetMomentsTarget struct {
	Target int
}

func (t *SetMomentsTarget) Name() string { return "set_moments_target" }

func (t *SetMomentsTarget) Description() string {
	return fmt.Sprintf("Meta de %d momentos por semana", t.Target)
}

func (t *SetMomentsTarget) Validate(base domain.Input) error {
	if _, ok := base.(*domain.MomentsInput); !ok {
		return wrongInput(t, domain.CalculatorMoments, base)
	}
	if t.Target < 1 || t.Target > 100 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("target must be between 1 and 100, got %d", t.Target), nil)
	}
	return nil
}

func (t *SetMomentsTarget) Apply(base domain.Input) (domain.Input, error) {
	copied, err := CopyInput(base)
	if err != nil {
		return nil, err
	}
	in := copied.(*domain.MomentsInput)
	target := t.Target
	in.TargetMomentsPerWeek = &target
	return in, nil
}

// RaiseQuizDimension adds points to every answer of one quiz dimension,
// capped at the top of the scale.
type RaiseQuizDimension struct {
	Dimension domain.Dimension
	Points    int
}

func (t *RaiseQuizDimension) Name() string { return "raise_quiz_dimension" }

func (t *RaiseQuizDimension) Description() string {
	return fmt.Sprintf("%+d ponto(s) em cada resposta de %s", t.Points, calculation.DimensionLabel(t.Dimension))
}

func (t *RaiseQuizDimension) Validate(base domain.Input) error {
	if _, ok := base.(*domain.QuizInput); !ok {
		return wrongInput(t, domain.CalculatorParentQuiz, base)
	}
	known := false
	for _, d := range domain.AllDimensions {
		known = known || d == t.Dimension
	}
	if !known {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown dimension %q", t.Dimension), nil)
	}
	if t.Points < -3 || t.Points > 3 || t.Points == 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("points must be between -3 and 3 and non-zero, got %d", t.Points), nil)
	}
	return nil
}

func (t *RaiseQuizDimension) Apply(base domain.Input) (domain.Input, error) {
	copied, err := CopyInput(base)
	if err != nil {
		return nil, err
	}
	in := copied.(*domain.QuizInput)
	for _, q := range calculation.QuizQuestions() {
		if q.Dimension != t.Dimension {
			continue
		}
		if v, ok := in.Answers[q.ID]; ok {
			in.Answers[q.ID] = clampInt(v+t.Points, 0, 3)
		}
	}
	return in, nil
}
