package breakeven

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/transform"
)

// leverSpec describes how one lever moves an input. The solver searches
// whole steps between zero and the headroom, so moving a lever further must
// never lower the score or the category. The weekly hours lever scales the
// activity hours with the total for that reason: adding only general time
// dilutes the weighted multiplier.
type leverSpec struct {
	calculator domain.CalculatorName
	label      string
	unit       string
	step       float64
	headroom   func(domain.Input) float64
	transform  func(base domain.Input, change float64) transform.InputTransform
}

var levers = map[Lever]leverSpec{
	LeverWeekdayMinutes: {
		calculator: domain.CalculatorFamilyTime,
		label:      "Minutos a mais por dia útil",
		unit:       "min",
		step:       5,
		headroom:   func(in domain.Input) float64 { return 480 - in.(*domain.FamilyTimeInput).WeekdayMinutes },
		transform: func(_ domain.Input, change float64) transform.InputTransform {
			return &transform.AddFamilyTime{WeekdayMinutes: change}
		},
	},
	LeverWeekendMinutes: {
		calculator: domain.CalculatorFamilyTime,
		label:      "Minutos a mais por dia de fim de semana",
		unit:       "min",
		step:       5,
		headroom:   func(in domain.Input) float64 { return 960 - in.(*domain.FamilyTimeInput).WeekendMinutes },
		transform: func(_ domain.Input, change float64) transform.InputTransform {
			return &transform.AddFamilyTime{WeekendMinutes: change}
		},
	},
	LeverQuality: {
		calculator: domain.CalculatorFamilyTime,
		label:      "Aumento do multiplicador de qualidade",
		unit:       "x",
		step:       0.05,
		headroom:   func(in domain.Input) float64 { return 2 - in.(*domain.FamilyTimeInput).QualityMultiplier },
		transform: func(base domain.Input, change float64) transform.InputTransform {
			current := base.(*domain.FamilyTimeInput).QualityMultiplier
			return &transform.SetQualityMultiplier{Multiplier: min(2, math.Round((current+change)*100)/100)}
		},
	},
	LeverScreenMinutes: {
		calculator: domain.CalculatorScreenTime,
		label:      "Minutos a menos de tela por dia",
		unit:       "min",
		step:       5,
		headroom:   func(in domain.Input) float64 { return in.(*domain.ScreenTimeInput).DailyScreenMinutes },
		transform: func(_ domain.Input, change float64) transform.InputTransform {
			return &transform.AdjustScreenTime{Minutes: -change}
		},
	},
	LeverDinners: {
		calculator: domain.CalculatorMeals,
		label:      "Jantares a mais por semana",
		unit:       "jantares",
		step:       1,
		headroom:   func(in domain.Input) float64 { return float64(7 - in.(*domain.MealsInput).DinnerPerWeek) },
		transform: func(_ domain.Input, change float64) transform.InputTransform {
			return &transform.AddMeals{Dinner: int(change)}
		},
	},
	LeverWeeklyHours: {
		calculator: domain.CalculatorSocialROI,
		label:      "Horas semanais a mais",
		unit:       "h",
		step:       0.5,
		headroom:   func(in domain.Input) float64 { return transform.WeeklyHoursHeadroom(in.(*domain.SocialROIInput)) },
		transform: func(_ domain.Input, change float64) transform.InputTransform {
			return &transform.ScaleWeeklyHours{Hours: change}
		},
	},
}

// LeversFor lists the levers that apply to a calculator.
func LeversFor(calculator domain.CalculatorName) []Lever {
	var out []Lever
	for _, l := range AllLevers {
		if levers[l].calculator == calculator {
			out = append(out, l)
		}
	}
	return out
}

// ParseLever validates a lever name.
func ParseLever(name string) (Lever, error) {
	l := Lever(name)
	if _, ok := levers[l]; !ok {
		return "", &BreakEvenError{Operation: "parse_lever", Message: fmt.Sprintf("unknown lever: %s", name)}
	}
	return l, nil
}

// Label returns the display label of the lever.
func (l Lever) Label() string {
	if spec, ok := levers[l]; ok {
		return spec.label
	}
	return string(l)
}

// Calculator returns the calculator the lever changes.
func (l Lever) Calculator() domain.CalculatorName {
	return levers[l].calculator
}
