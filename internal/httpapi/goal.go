package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/famcalc/internal/breakeven"
	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
)

// GoalHandler searches for the smallest habit change that makes the input in
// the body reach the score and category query parameters. Without a lever
// parameter every lever of the calculator is tried.
func GoalHandler(engine *calculation.CalculationEngine) http.HandlerFunc {
	solver := breakeven.NewDefaultSolver(engine)
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		goal := breakeven.Goal{Category: domain.Category(q.Get("category"))}
		if s := q.Get("score"); s != "" {
			score, err := strconv.ParseFloat(s, 64)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "score must be a number")
				return
			}
			goal.Score = score
		}

		input, err := calculation.NewInput(domain.CalculatorName(chi.URLParam(r, "name")))
		if err != nil {
			writeError(w, err)
			return
		}
		if err := decodeBody(w, r, input); err != nil {
			writeError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			writeError(w, err)
			return
		}

		var result any
		if name := q.Get("lever"); name != "" {
			lever, perr := breakeven.ParseLever(name)
			if perr != nil {
				writeErr(w, http.StatusBadRequest, perr.Error())
				return
			}
			result, err = solver.Solve(r.Context(), breakeven.GoalRequest{Base: input, Lever: lever, Goal: goal})
		} else {
			result, err = solver.SolveAllLevers(r.Context(), input, goal)
		}
		if err != nil {
			var beErr *breakeven.BreakEvenError
			if errors.As(err, &beErr) && beErr.Operation != "evaluate" {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
