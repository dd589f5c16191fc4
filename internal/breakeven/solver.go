package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the smallest habit change that reaches a goal.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new goal solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// evaluation is one calculator run at k lever steps.
type evaluation struct {
	steps   int
	input   domain.Input
	desc    string
	summary domain.Summary
}

// Solve runs a binary search over whole lever steps. It assumes the
// calculator result improves as the lever moves, which holds for every
// registered lever.
func (s *Solver) Solve(ctx context.Context, req GoalRequest) (*GoalResult, error) {
	if err := req.Goal.Validate(); err != nil {
		return nil, err
	}
	if req.Base == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "base input is required"}
	}
	spec, ok := levers[req.Lever]
	if !ok {
		return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("unsupported lever: %s", req.Lever)}
	}
	if calc, _ := transform.CalculatorOf(req.Base); calc != spec.calculator {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("lever %s applies to %s inputs, got %s", req.Lever, spec.calculator, calc),
		}
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	iterations := 0
	evaluate := func(steps int) (evaluation, error) {
		iterations++
		select {
		case <-ctx.Done():
			return evaluation{}, ctx.Err()
		default:
		}
		return s.evaluate(req.Base, spec, steps)
	}

	base, err := evaluate(0)
	if err != nil {
		return nil, err
	}
	headroom := math.Max(0, spec.headroom(req.Base))
	maxSteps := int(math.Floor(headroom/spec.step + 1e-9))

	result := &GoalResult{
		Lever:       req.Lever,
		LeverLabel:  spec.label,
		Unit:        spec.unit,
		Calculator:  spec.calculator,
		Goal:        req.Goal,
		Headroom:    stepsDecimal(maxSteps, spec.step),
		BaseSummary: base.summary,
	}
	finish := func(e evaluation, success bool, info string) *GoalResult {
		result.Success = success
		result.Iterations = iterations
		result.ConvergenceInfo = info
		result.Change = stepsDecimal(e.steps, spec.step)
		result.Description = e.desc
		result.Input = e.input
		result.Summary = e.summary
		result.ScoreDiffFromBase = decimal.NewFromFloat(e.summary.Score).Sub(decimal.NewFromFloat(base.summary.Score))
		return result
	}

	if req.Goal.Met(base.summary) {
		return finish(base, true, "Meta já alcançada sem mudanças"), nil
	}
	if maxSteps == 0 {
		return finish(base, false, "Sem margem para ajustar esta alavanca"), nil
	}

	top, err := evaluate(maxSteps)
	if err != nil {
		return nil, err
	}
	if !req.Goal.Met(top.summary) {
		return finish(top, false, "Meta inalcançável dentro dos limites da alavanca"), nil
	}

	// lo never meets the goal and hi always does.
	lo, hi, best := 0, maxSteps, top
	for hi-lo > 1 {
		if iterations >= req.MaxIterations {
			return finish(best, true, fmt.Sprintf("Limite de %d iterações atingido", req.MaxIterations)), nil
		}
		mid := lo + (hi-lo)/2
		e, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if req.Goal.Met(e.summary) {
			hi, best = mid, e
		} else {
			lo = mid
		}
	}
	return finish(best, true, "Busca binária convergiu"), nil
}

func (s *Solver) evaluate(base domain.Input, spec leverSpec, steps int) (evaluation, error) {
	input := base
	desc := ""
	if steps > 0 {
		t := spec.transform(base, float64(steps)*spec.step)
		var err error
		input, err = transform.ApplyTransforms(base, []transform.InputTransform{t})
		if err != nil {
			return evaluation{}, &BreakEvenError{Operation: "evaluate", Message: "failed to apply lever", Cause: err}
		}
		desc = t.Description()
	}

	result, err := s.CalcEngine.Run(input)
	if err != nil {
		return evaluation{}, &BreakEvenError{Operation: "evaluate", Message: "failed to calculate input", Cause: err}
	}
	return evaluation{steps: steps, input: input, desc: desc, summary: result.Summary()}, nil
}

func stepsDecimal(steps int, step float64) decimal.Decimal {
	return decimal.NewFromInt(int64(steps)).Mul(decimal.NewFromFloat(step))
}
