package breakeven

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/transform"
)

func familyTime() *domain.FamilyTimeInput {
	return &domain.FamilyTimeInput{WeekdayMinutes: 60, WeekendMinutes: 120, QualityMultiplier: 1, FamilySize: 4}
}

func meals() *domain.MealsInput {
	return &domain.MealsInput{
		DinnerPerWeek:       3,
		AverageDuration:     domain.Duration20To30,
		ScreensPresent:      domain.ScreensSometimes,
		ConversationQuality: 3,
	}
}

func newSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine())
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	assert.Same(t, engine, solver.CalcEngine)
	assert.Equal(t, 50, solver.Options.MaxIterations)
}

func TestGoal(t *testing.T) {
	s := domain.Summary{Score: 61, Category: domain.CategoryHigh}

	assert.True(t, Goal{Score: 60}.Met(s))
	assert.False(t, Goal{Score: 62}.Met(s))
	assert.True(t, Goal{Category: domain.CategoryMedium}.Met(s))
	assert.False(t, Goal{Score: 60, Category: domain.CategoryExcellent}.Met(s))

	assert.Error(t, Goal{}.Validate())
	assert.Error(t, Goal{Score: 101}.Validate())
	assert.Error(t, Goal{Category: "great"}.Validate())
	assert.NoError(t, Goal{Category: domain.CategoryExcellent}.Validate())

	assert.Equal(t, "pontuação 80", Goal{Score: 80}.String())
	assert.Equal(t, "categoria high", Goal{Category: domain.CategoryHigh}.String())
}

func TestLevers(t *testing.T) {
	assert.Equal(t, []Lever{LeverWeekdayMinutes, LeverWeekendMinutes, LeverQuality}, LeversFor(domain.CalculatorFamilyTime))
	assert.Equal(t, []Lever{LeverDinners}, LeversFor(domain.CalculatorMeals))
	assert.Empty(t, LeversFor(domain.CalculatorParentQuiz))

	l, err := ParseLever("screen_minutes")
	require.NoError(t, err)
	assert.Equal(t, domain.CalculatorScreenTime, l.Calculator())

	_, err = ParseLever("tsp_rate")
	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "parse_lever", beErr.Operation)
}

func TestSolve_WeekdayMinutesToScore(t *testing.T) {
	result, err := newSolver().Solve(context.Background(), GoalRequest{
		Base:  familyTime(),
		Lever: LeverWeekdayMinutes,
		Goal:  Goal{Score: 60},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Busca binária convergiu", result.ConvergenceInfo)
	assert.True(t, result.Change.Equal(decimal.NewFromInt(45)), "change=%s", result.Change)
	assert.True(t, result.Headroom.Equal(decimal.NewFromInt(420)))
	assert.Equal(t, 43.0, result.BaseSummary.Score)
	assert.Equal(t, 61.0, result.Summary.Score)
	assert.True(t, result.ScoreDiffFromBase.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, 105.0, result.Input.(*domain.FamilyTimeInput).WeekdayMinutes)
	assert.NotEmpty(t, result.Description)
	assert.LessOrEqual(t, result.Iterations, 10)
}

func TestSolve_WeekdayMinutesToCategory(t *testing.T) {
	result, err := newSolver().Solve(context.Background(), GoalRequest{
		Base:  familyTime(),
		Lever: LeverWeekdayMinutes,
		Goal:  Goal{Category: domain.CategoryExcellent},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Change.Equal(decimal.NewFromInt(105)), "change=%s", result.Change)
	assert.Equal(t, domain.CategoryExcellent, result.Summary.Category)
}

func TestSolve_Quality(t *testing.T) {
	result, err := newSolver().Solve(context.Background(), GoalRequest{
		Base:  familyTime(),
		Lever: LeverQuality,
		Goal:  Goal{Score: 60},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Change.Equal(decimal.NewFromFloat(0.4)), "change=%s", result.Change)
	assert.Equal(t, 1.4, result.Input.(*domain.FamilyTimeInput).QualityMultiplier)
}

func TestSolve_Dinners(t *testing.T) {
	result, err := newSolver().Solve(context.Background(), GoalRequest{
		Base:  meals(),
		Lever: LeverDinners,
		Goal:  Goal{Category: domain.CategoryExcellent},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Change.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 7, result.Input.(*domain.MealsInput).DinnerPerWeek)
}

func TestSolve_WeeklyHoursKeepsActivityMix(t *testing.T) {
	// All five hours are educational. Adding only general hours would drop
	// the score from 73 to 68 before it recovers.
	base := &domain.SocialROIInput{ProgramInvestment: 5, FamiliesReached: 1, AvgIncomeIncrease: 5}
	result, err := newSolver().Solve(context.Background(), GoalRequest{
		Base:  base,
		Lever: LeverWeeklyHours,
		Goal:  Goal{Score: 80},
	})
	require.NoError(t, err)

	assert.True(t, result.Success, result.ConvergenceInfo)
	assert.True(t, result.Change.Equal(decimal.NewFromFloat(1.5)), "change=%s", result.Change)
	assert.True(t, result.Headroom.Equal(decimal.NewFromInt(95)), "headroom=%s", result.Headroom)
	assert.Equal(t, 73.0, result.BaseSummary.Score)
	assert.Equal(t, 80.0, result.Summary.Score)

	roi := result.Input.(*domain.SocialROIInput)
	assert.InDelta(t, 6.5, roi.ProgramInvestment, 1e-9)
	assert.InDelta(t, 6.5, roi.AvgIncomeIncrease, 1e-9)
	assert.Equal(t, 5.0, base.AvgIncomeIncrease, "Base must not change")
}

func TestLeversNeverLowerTheResult(t *testing.T) {
	bases := []domain.Input{
		familyTime(),
		&domain.FamilyTimeInput{WeekdayMinutes: 30, WeekendMinutes: 60, QualityMultiplier: 0.5, FamilySize: 2},
		&domain.ScreenTimeInput{ChildAge: 4, DailyScreenMinutes: 240, EducationalPercent: 30, CoViewingPercent: 10, BeforeBedMinutes: 60},
		&domain.ScreenTimeInput{ChildAge: 12, DailyScreenMinutes: 300, BeforeBedMinutes: 45},
		meals(),
		&domain.SocialROIInput{ProgramInvestment: 5, FamiliesReached: 1, AvgIncomeIncrease: 5},
		&domain.SocialROIInput{ProgramInvestment: 12, FamiliesReached: 2, AvgIncomeIncrease: 3, HealthSavings: 2, EducationImprovement: 2},
		&domain.SocialROIInput{FamiliesReached: 1},
	}
	solver := newSolver()

	for _, lever := range AllLevers {
		spec := levers[lever]
		for _, base := range bases {
			if calc, _ := transform.CalculatorOf(base); calc != spec.calculator {
				continue
			}
			maxSteps := int(math.Floor(spec.headroom(base)/spec.step + 1e-9))
			require.Positive(t, maxSteps, "%s on %+v", lever, base)

			prev, err := solver.evaluate(base, spec, 0)
			require.NoError(t, err)
			for k := 1; k <= maxSteps; k++ {
				e, err := solver.evaluate(base, spec, k)
				require.NoError(t, err, "%s step %d", lever, k)
				require.GreaterOrEqual(t, e.summary.Score, prev.summary.Score, "%s score fell at step %d on %+v", lever, k, base)
				require.GreaterOrEqual(t, e.summary.Category.Rank(), prev.summary.Category.Rank(), "%s category fell at step %d on %+v", lever, k, base)
				prev = e
			}
		}
	}
}

func TestSolve_AlreadyMet(t *testing.T) {
	base := familyTime()
	result, err := newSolver().Solve(context.Background(), GoalRequest{Base: base, Lever: LeverWeekdayMinutes, Goal: Goal{Score: 40}})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Iterations)
	assert.True(t, result.Change.IsZero())
	assert.Empty(t, result.Description)
	assert.Same(t, domain.Input(base), result.Input)
}

func TestSolve_Unreachable(t *testing.T) {
	base := &domain.FamilyTimeInput{WeekdayMinutes: 30, WeekendMinutes: 60, QualityMultiplier: 0.5, FamilySize: 2}
	result, err := newSolver().Solve(context.Background(), GoalRequest{Base: base, Lever: LeverWeekendMinutes, Goal: Goal{Score: 100}})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "Meta inalcançável dentro dos limites da alavanca", result.ConvergenceInfo)
	assert.True(t, result.Change.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 50.0, result.Summary.Score)
}

func TestSolve_MaxIterations(t *testing.T) {
	solver := NewSolver(calculation.NewCalculationEngine(), SolverOptions{MaxIterations: 3})
	result, err := solver.Solve(context.Background(), GoalRequest{Base: familyTime(), Lever: LeverWeekdayMinutes, Goal: Goal{Score: 60}})
	require.NoError(t, err)

	assert.True(t, result.Success, "The upper bound always meets the goal")
	assert.Equal(t, "Limite de 3 iterações atingido", result.ConvergenceInfo)
	assert.True(t, result.Change.GreaterThanOrEqual(decimal.NewFromInt(45)))
}

func TestSolve_Errors(t *testing.T) {
	solver := newSolver()
	ctx := context.Background()

	_, err := solver.Solve(ctx, GoalRequest{Base: familyTime(), Lever: LeverWeekdayMinutes})
	assert.Error(t, err, "Goal is required")

	_, err = solver.Solve(ctx, GoalRequest{Lever: LeverWeekdayMinutes, Goal: Goal{Score: 60}})
	assert.Error(t, err)

	_, err = solver.Solve(ctx, GoalRequest{Base: familyTime(), Lever: "tsp_rate", Goal: Goal{Score: 60}})
	assert.ErrorContains(t, err, "unsupported lever")

	_, err = solver.Solve(ctx, GoalRequest{Base: familyTime(), Lever: LeverDinners, Goal: Goal{Score: 60}})
	assert.ErrorContains(t, err, "lever dinners applies to refeicoes inputs, got tempo-familiar")

	invalid := familyTime()
	invalid.FamilySize = 0
	_, err = solver.Solve(ctx, GoalRequest{Base: invalid, Lever: LeverWeekdayMinutes, Goal: Goal{Score: 60}})
	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "evaluate", beErr.Operation)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = solver.Solve(cancelled, GoalRequest{Base: familyTime(), Lever: LeverWeekdayMinutes, Goal: Goal{Score: 60}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSolveAllLevers(t *testing.T) {
	multi, err := newSolver().SolveAllLevers(context.Background(), familyTime(), Goal{Score: 60})
	require.NoError(t, err)

	assert.Equal(t, domain.CalculatorFamilyTime, multi.Calculator)
	require.Len(t, multi.Results, 3)
	require.NotNil(t, multi.Best)
	assert.Equal(t, LeverWeekdayMinutes, multi.Best.Lever)
	assert.Equal(t, "Caminho mais curto: Minutos a mais por dia útil (45 min)", multi.Recommendations[0])
	assert.Len(t, multi.Recommendations, 3)
}

func TestSolveAllLevers_NoLevers(t *testing.T) {
	_, err := newSolver().SolveAllLevers(context.Background(), &domain.QuizInput{}, Goal{Score: 60})
	assert.ErrorContains(t, err, "no levers for quiz-parentalidade")
}

func TestSolveAllLevers_AlreadyMet(t *testing.T) {
	multi, err := newSolver().SolveAllLevers(context.Background(), familyTime(), Goal{Score: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Você já alcança pontuação 10. Mantenha os hábitos atuais"}, multi.Recommendations)
}

func TestFormatters(t *testing.T) {
	solver := newSolver()
	result, err := solver.Solve(context.Background(), GoalRequest{Base: familyTime(), Lever: LeverWeekdayMinutes, Goal: Goal{Score: 60}})
	require.NoError(t, err)

	table := (&TableFormatter{}).Format(result)
	assert.Contains(t, table, "Minutos a mais por dia útil")
	assert.Contains(t, table, "45 min (margem de 420 min)")
	assert.Contains(t, table, "43 → 61 (+18)")
	assert.Contains(t, table, "✓ Meta alcançada")

	js, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"lever":"weekday_minutes"`)
	assert.Contains(t, js, `"change":"45"`)

	multi, err := solver.SolveAllLevers(context.Background(), familyTime(), Goal{Score: 60})
	require.NoError(t, err)
	out := (&TableFormatter{}).FormatMulti(multi)
	assert.Contains(t, out, "TODAS AS ALAVANCAS")
	assert.Contains(t, out, "Caminho mais curto")
}
