package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// ErrUnknownCalculator is returned for a calculator name that is not registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Logger is the logging surface the engine writes to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine dispatches inputs to the calculators. Now supplies the
// current date for the week and streak views of the moments calculator.
type CalculationEngine struct {
	Logger Logger
	Now    func() time.Time
}

// NewCalculationEngine creates an engine with a no-op logger and the wall clock.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger installs l, or the no-op logger when l is nil.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// NewInput returns a pointer to an empty input for the named calculator,
// ready to be decoded into.
func NewInput(name domain.CalculatorName) (domain.Input, error) {
	switch name {
	case domain.CalculatorFamilyTime:
		return &domain.FamilyTimeInput{}, nil
	case domain.CalculatorScreenTime:
		return &domain.ScreenTimeInput{}, nil
	case domain.CalculatorSocialROI:
		return &domain.SocialROIInput{}, nil
	case domain.CalculatorMeals:
		return &domain.MealsInput{}, nil
	case domain.CalculatorMoments:
		return &domain.MomentsInput{}, nil
	case domain.CalculatorParentQuiz:
		return &domain.QuizInput{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
}

// Run validates the input and computes the matching calculator result.
// Inputs may be passed by value or by pointer.
func (ce *CalculationEngine) Run(input domain.Input) (domain.Result, error) {
	input, err := asPointer(input)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		ce.Logger.Warnf("rejected %T: %v", input, err)
		return nil, err
	}

	var result domain.Result
	switch in := input.(type) {
	case *domain.FamilyTimeInput:
		result, err = CalculateFamilyTime(*in)
	case *domain.ScreenTimeInput:
		result, err = CalculateScreenTime(*in)
	case *domain.SocialROIInput:
		result, err = CalculateSocialROI(*in)
	case *domain.MealsInput:
		result, err = CalculateMeals(*in)
	case *domain.MomentsInput:
		result, err = CalculateMoments(*in, ce.now())
	case *domain.QuizInput:
		result, err = CalculateQuiz(*in)
	default:
		return nil, fmt.Errorf("%w: input type %T", ErrUnknownCalculator, input)
	}
	if err != nil {
		return nil, err
	}

	s := result.Summary()
	ce.Logger.Debugf("%s: score=%v category=%s", s.Calculator, s.Score, s.Category)
	return result, nil
}

// asPointer converts value inputs to pointers and rejects nil pointers,
// whose value-receiver Validate would otherwise panic.
func asPointer(input domain.Input) (domain.Input, error) {
	var isNil bool
	switch in := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil input", ErrUnknownCalculator)
	case domain.FamilyTimeInput:
		return &in, nil
	case domain.ScreenTimeInput:
		return &in, nil
	case domain.SocialROIInput:
		return &in, nil
	case domain.MealsInput:
		return &in, nil
	case domain.MomentsInput:
		return &in, nil
	case domain.QuizInput:
		return &in, nil
	case *domain.FamilyTimeInput:
		isNil = in == nil
	case *domain.ScreenTimeInput:
		isNil = in == nil
	case *domain.SocialROIInput:
		isNil = in == nil
	case *domain.MealsInput:
		isNil = in == nil
	case *domain.MomentsInput:
		isNil = in == nil
	case *domain.QuizInput:
		isNil = in == nil
	}
	if isNil {
		return nil, fmt.Errorf("%w: nil %T input", ErrUnknownCalculator, input)
	}
	return input, nil
}

// RunNamed decodes with decode into a fresh input for name and runs it.
func (ce *CalculationEngine) RunNamed(name domain.CalculatorName, decode func(any) error) (domain.Result, error) {
	input, err := NewInput(name)
	if err != nil {
		return nil, err
	}
	if err := decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode %s input: %w", name, err)
	}
	ce.Logger.Infof("running calculator %s", name)
	return ce.Run(input)
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now()
	}
	return ce.Now()
}
