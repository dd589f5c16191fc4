package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// TransformRegistry creates transforms by name from string parameters, as
// given on the command line.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("add_family_time", createAddFamilyTime)
	registry.Register("set_quality", createSetQuality)
	registry.Register("adjust_screen_time", createAdjustScreenTime)
	registry.Register("set_screen_habits", createSetScreenHabits)
	registry.Register("add_meals", createAddMeals)
	registry.Register("set_meal_habits", createSetMealHabits)
	registry.Register("add_weekly_hours", createAddWeeklyHours)
	registry.Register("scale_weekly_hours", createScaleWeeklyHours)
	registry.Register("add_daily_moments", createAddDailyMoments)
	registry.Register("set_moments_target", createSetMomentsTarget)
	registry.Register("raise_quiz_dimension", createRaiseQuizDimension)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_meals:dinner=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Parameter helpers. A missing optional parameter yields the zero value.

func floatParam(transform string, params map[string]string, key string) (float64, error) {
	s, ok := params[key]
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid %s value: %w", transform, key, err)
	}
	return v, nil
}

func optionalFloat(transform string, params map[string]string, key string) (*float64, error) {
	if _, ok := params[key]; !ok {
		return nil, nil
	}
	v, err := floatParam(transform, params, key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid %s value: %w", transform, key, err)
	}
	return v, nil
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	s, ok := params[key]
	if !ok || s == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return s, nil
}

// Factory functions for each transform

func createAddFamilyTime(params map[string]string) (InputTransform, error) {
	weekday, err := floatParam("add_family_time", params, "weekday")
	if err != nil {
		return nil, err
	}
	weekend, err := floatParam("add_family_time", params, "weekend")
	if err != nil {
		return nil, err
	}
	return &AddFamilyTime{WeekdayMinutes: weekday, WeekendMinutes: weekend}, nil
}

func createSetQuality(params map[string]string) (InputTransform, error) {
	if _, err := requireParam("set_quality", params, "multiplier"); err != nil {
		return nil, err
	}
	m, err := floatParam("set_quality", params, "multiplier")
	if err != nil {
		return nil, err
	}
	return &SetQualityMultiplier{Multiplier: m}, nil
}

func createAdjustScreenTime(params map[string]string) (InputTransform, error) {
	if _, err := requireParam("adjust_screen_time", params, "minutes"); err != nil {
		return nil, err
	}
	minutes, err := floatParam("adjust_screen_time", params, "minutes")
	if err != nil {
		return nil, err
	}
	return &AdjustScreenTime{Minutes: minutes}, nil
}

func createSetScreenHabits(params map[string]string) (InputTransform, error) {
	t := &SetScreenHabits{}
	var err error
	if t.EducationalPercent, err = optionalFloat("set_screen_habits", params, "educational"); err != nil {
		return nil, err
	}
	if t.CoViewingPercent, err = optionalFloat("set_screen_habits", params, "coviewing"); err != nil {
		return nil, err
	}
	if t.BeforeBedMinutes, err = optionalFloat("set_screen_habits", params, "before_bed"); err != nil {
		return nil, err
	}
	return t, nil
}

func createAddMeals(params map[string]string) (InputTransform, error) {
	t := &AddMeals{}
	var err error
	if t.Breakfast, err = intParam("add_meals", params, "breakfast"); err != nil {
		return nil, err
	}
	if t.Lunch, err = intParam("add_meals", params, "lunch"); err != nil {
		return nil, err
	}
	if t.Dinner, err = intParam("add_meals", params, "dinner"); err != nil {
		return nil, err
	}
	return t, nil
}

func createSetMealHabits(params map[string]string) (InputTransform, error) {
	t := &SetMealHabits{}
	if s, ok := params["duration"]; ok {
		d := domain.MealDuration(s)
		t.Duration = &d
	}
	if s, ok := params["screens"]; ok {
		sp := domain.ScreensPresence(s)
		t.Screens = &sp
	}
	if s, ok := params["both_parents"]; ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("set_meal_habits: invalid both_parents value: %w", err)
		}
		t.BothParentsPresent = &b
	}
	if _, ok := params["conversation"]; ok {
		q, err := intParam("set_meal_habits", params, "conversation")
		if err != nil {
			return nil, err
		}
		t.ConversationQuality = &q
	}
	return t, nil
}

func createAddWeeklyHours(params map[string]string) (InputTransform, error) {
	if _, err := requireParam("add_weekly_hours", params, "hours"); err != nil {
		return nil, err
	}
	hours, err := floatParam("add_weekly_hours", params, "hours")
	if err != nil {
		return nil, err
	}
	return &AddWeeklyHours{Hours: hours}, nil
}

func createScaleWeeklyHours(params map[string]string) (InputTransform, error) {
	if _, err := requireParam("scale_weekly_hours", params, "hours"); err != nil {
		return nil, err
	}
	hours, err := floatParam("scale_weekly_hours", params, "hours")
	if err != nil {
		return nil, err
	}
	return &ScaleWeeklyHours{Hours: hours}, nil
}

func createAddDailyMoments(params map[string]string) (InputTransform, error) {
	typ, err := requireParam("add_daily_moments", params, "type")
	if err != nil {
		return nil, err
	}
	startStr, err := requireParam("add_daily_moments", params, "start")
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start date, expected YYYY-MM-DD: %w", err)
	}

	t := &AddDailyMoments{Type: domain.MomentType(typ), Start: start, Duration: 15, Days: 7}
	if _, ok := params["duration"]; ok {
		if t.Duration, err = floatParam("add_daily_moments", params, "duration"); err != nil {
			return nil, err
		}
	}
	if _, ok := params["days"]; ok {
		if t.Days, err = intParam("add_daily_moments", params, "days"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func createSetMomentsTarget(params map[string]string) (InputTransform, error) {
	if _, err := requireParam("set_moments_target", params, "target"); err != nil {
		return nil, err
	}
	target, err := intParam("set_moments_target", params, "target")
	if err != nil {
		return nil, err
	}
	return &SetMomentsTarget{Target: target}, nil
}

func createRaiseQuizDimension(params map[string]string) (InputTransform, error) {
	dim, err := requireParam("raise_quiz_dimension", params, "dimension")
	if err != nil {
		return nil, err
	}
	t := &RaiseQuizDimension{Dimension: domain.Dimension(dim), Points: 1}
	if _, ok := params["points"]; ok {
		if t.Points, err = intParam("raise_quiz_dimension", params, "points"); err != nil {
			return nil, err
		}
	}
	return t, nil
}
