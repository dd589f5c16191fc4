package transform

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// InputTransform is one composable change to a calculator input, used to
// build what-if scenarios from a base input.
type InputTransform interface {
	// Apply returns a modified copy of base. base itself is not changed.
	Apply(base domain.Input) (domain.Input, error)

	// Name returns a short identifier such as "add_family_time".
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the transform parameters against base without applying them.
	Validate(base domain.Input) error
}

// ApplyTransforms applies transforms in order, each one receiving the
// output of the previous one. The result is validated as a calculator input.
func ApplyTransforms(base domain.Input, transforms []InputTransform) (domain.Input, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	current, err := CopyInput(base)
	if err != nil {
		return nil, err
	}

	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}
		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("transformed input is invalid: %w", err)
	}
	return current, nil
}

// CopyInput returns a deep copy of a calculator input.
func CopyInput(in domain.Input) (domain.Input, error) {
	switch v := in.(type) {
	case *domain.FamilyTimeInput:
		c := *v
		return &c, nil
	case *domain.ScreenTimeInput:
		c := *v
		return &c, nil
	case *domain.SocialROIInput:
		c := *v
		if v.AverageChildAge != nil {
			age := *v.AverageChildAge
			c.AverageChildAge = &age
		}
		return &c, nil
	case *domain.MealsInput:
		c := *v
		return &c, nil
	case *domain.MomentsInput:
		c := *v
		c.Moments = slices.Clone(v.Moments)
		if v.TargetMomentsPerWeek != nil {
			target := *v.TargetMomentsPerWeek
			c.TargetMomentsPerWeek = &target
		}
		return &c, nil
	case *domain.QuizInput:
		return &domain.QuizInput{Answers: maps.Clone(v.Answers)}, nil
	default:
		return nil, fmt.Errorf("unsupported input type %T", in)
	}
}

// CalculatorOf names the calculator an input belongs to.
func CalculatorOf(in domain.Input) (domain.CalculatorName, bool) {
	switch in.(type) {
	case *domain.FamilyTimeInput:
		return domain.CalculatorFamilyTime, true
	case *domain.ScreenTimeInput:
		return domain.CalculatorScreenTime, true
	case *domain.SocialROIInput:
		return domain.CalculatorSocialROI, true
	case *domain.MealsInput:
		return domain.CalculatorMeals, true
	case *domain.MomentsInput:
		return domain.CalculatorMoments, true
	case *domain.QuizInput:
		return domain.CalculatorParentQuiz, true
	default:
		return "", false
	}
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// wrongInput reports a transform applied to another calculator's input.
func wrongInput(t InputTransform, want domain.CalculatorName, got domain.Input) error {
	name, ok := CalculatorOf(got)
	if !ok {
		name = domain.CalculatorName(fmt.Sprintf("%T", got))
	}
	return NewTransformError(t.Name(), "validate",
		fmt.Sprintf("applies to %s inputs, got %s", want, name), nil)
}
