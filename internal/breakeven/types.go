package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Lever names the habit the solver is allowed to change.
type Lever string

const (
	LeverWeekdayMinutes Lever = "weekday_minutes"
	LeverWeekendMinutes Lever = "weekend_minutes"
	LeverQuality        Lever = "quality"
	LeverScreenMinutes  Lever = "screen_minutes"
	LeverDinners        Lever = "dinners"
	LeverWeeklyHours    Lever = "weekly_hours"
)

// AllLevers lists every lever in presentation order.
var AllLevers = []Lever{
	LeverWeekdayMinutes,
	LeverWeekendMinutes,
	LeverQuality,
	LeverScreenMinutes,
	LeverDinners,
	LeverWeeklyHours,
}

// Goal is the outcome to reach. A zero Score or an empty Category is not
// checked; at least one of them must be set.
type Goal struct {
	Score    float64         `json:"score,omitempty"`
	Category domain.Category `json:"category,omitempty"`
}

// Met reports whether s reaches the goal.
func (g Goal) Met(s domain.Summary) bool {
	if s.Score < g.Score {
		return false
	}
	return g.Category == "" || s.Category.Rank() >= g.Category.Rank()
}

// String describes the goal in Portuguese.
func (g Goal) String() string {
	switch {
	case g.Score > 0 && g.Category != "":
		return fmt.Sprintf("pontuação %g e categoria %s", g.Score, g.Category)
	case g.Score > 0:
		return fmt.Sprintf("pontuação %g", g.Score)
	default:
		return fmt.Sprintf("categoria %s", g.Category)
	}
}

// Validate checks the goal is reachable in principle.
func (g Goal) Validate() error {
	if g.Score == 0 && g.Category == "" {
		return &BreakEvenError{Operation: "validate_goal", Message: "a target score or category is required"}
	}
	if g.Score < 0 || g.Score > 100 {
		return &BreakEvenError{Operation: "validate_goal", Message: fmt.Sprintf("target score must be between 0 and 100, got %g", g.Score)}
	}
	if g.Category != "" && g.Category.Rank() < 0 {
		return &BreakEvenError{Operation: "validate_goal", Message: fmt.Sprintf("unknown category: %s", g.Category)}
	}
	return nil
}

// GoalRequest asks for the smallest change of Lever that makes Base reach Goal.
type GoalRequest struct {
	Base          domain.Input
	Lever         Lever
	Goal          Goal
	MaxIterations int
}

// GoalResult is the outcome of one solver run. Change is how far the lever
// moved in its own unit; for screen minutes it is the daily reduction.
type GoalResult struct {
	Lever           Lever                 `json:"lever"`
	LeverLabel      string                `json:"leverLabel"`
	Unit            string                `json:"unit"`
	Calculator      domain.CalculatorName `json:"calculator"`
	Goal            Goal                  `json:"goal"`
	Success         bool                  `json:"success"`
	Iterations      int                   `json:"iterations"`
	ConvergenceInfo string                `json:"convergenceInfo"`

	Change      decimal.Decimal `json:"change"`
	Headroom    decimal.Decimal `json:"headroom"`
	Description string          `json:"description,omitempty"`
	Input       domain.Input    `json:"input"`

	Summary           domain.Summary  `json:"summary"`
	BaseSummary       domain.Summary  `json:"baseSummary"`
	ScoreDiffFromBase decimal.Decimal `json:"scoreDiffFromBase"`
}

// Effort is the share of the available headroom the change uses, 0 to 1.
func (r *GoalResult) Effort() decimal.Decimal {
	if r.Headroom.IsZero() {
		return decimal.Zero
	}
	return r.Change.Div(r.Headroom)
}

// MultiLeverResult holds one result per lever of a calculator.
type MultiLeverResult struct {
	Calculator      domain.CalculatorName `json:"calculator"`
	Goal            Goal                  `json:"goal"`
	Results         []GoalResult          `json:"results"`
	Best            *GoalResult           `json:"best,omitempty"`
	Recommendations []string              `json:"recommendations"`
}

// SolverOptions configures the solver.
type SolverOptions struct {
	MaxIterations int
}

// DefaultSolverOptions returns the default solver configuration.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: 50}
}

// BreakEvenError represents errors from the goal solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
