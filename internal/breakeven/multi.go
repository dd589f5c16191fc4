package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/transform"
)

// SolveAllLevers solves the goal once per lever of the base's calculator and
// picks the result that needs the smallest share of its headroom.
func (s *Solver) SolveAllLevers(ctx context.Context, base domain.Input, goal Goal) (*MultiLeverResult, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	calc, ok := transform.CalculatorOf(base)
	if !ok {
		return nil, &BreakEvenError{Operation: "solve_all_levers", Message: fmt.Sprintf("unsupported input type %T", base)}
	}
	available := LeversFor(calc)
	if len(available) == 0 {
		return nil, &BreakEvenError{Operation: "solve_all_levers", Message: fmt.Sprintf("no levers for %s", calc)}
	}

	multi := &MultiLeverResult{Calculator: calc, Goal: goal}
	for _, l := range available {
		r, err := s.Solve(ctx, GoalRequest{Base: base, Lever: l, Goal: goal})
		if err != nil {
			return nil, err
		}
		multi.Results = append(multi.Results, *r)
	}

	for i := range multi.Results {
		r := &multi.Results[i]
		if !r.Success {
			continue
		}
		if multi.Best == nil || r.Effort().LessThan(multi.Best.Effort()) {
			multi.Best = r
		}
	}
	multi.Recommendations = s.recommendations(multi)
	return multi, nil
}

func (s *Solver) recommendations(m *MultiLeverResult) []string {
	var recs []string
	if m.Best == nil {
		return append(recs, fmt.Sprintf("Nenhuma alavanca sozinha alcança %s; combine mudanças com o comando compare", m.Goal))
	}
	if m.Best.Change.IsZero() {
		return append(recs, fmt.Sprintf("Você já alcança %s. Mantenha os hábitos atuais", m.Goal))
	}

	recs = append(recs, fmt.Sprintf("Caminho mais curto: %s (%s %s)",
		m.Best.LeverLabel, m.Best.Change.String(), m.Best.Unit))
	for _, r := range m.Results {
		if r.Lever == m.Best.Lever {
			continue
		}
		if r.Success {
			recs = append(recs, fmt.Sprintf("Alternativa: %s (%s %s)", r.LeverLabel, r.Change.String(), r.Unit))
		} else {
			recs = append(recs, fmt.Sprintf("%s não basta para alcançar %s", r.LeverLabel, m.Goal))
		}
	}
	return recs
}
