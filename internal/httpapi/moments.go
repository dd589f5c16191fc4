package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/moments"
)

type addMomentRequest struct {
	Type     domain.MomentType `json:"type"`
	Duration float64           `json:"duration"`
	Date     string            `json:"date"`
	Note     string            `json:"note"`
}

// QuizQuestionsHandler serves the quiz catalogue and its answer scale.
func QuizQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": calculation.QuizQuestions(),
			"scale":     calculation.PointLabels,
		})
	}
}

func ListMomentsHandler(store moments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"moments": list})
	}
}

func AddMomentHandler(store moments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMomentRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		m, err := store.Add(r.Context(), chi.URLParam(r, "key"), domain.LoggedMoment{
			Type:     req.Type,
			Duration: req.Duration,
			Date:     req.Date,
			Note:     req.Note,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func RemoveMomentHandler(store moments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Remove(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClearMomentsHandler(store moments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(r.Context(), chi.URLParam(r, "key")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// MomentsScoreHandler scores the stored list with the moments calculator.
// The optional target query parameter sets the weekly goal.
func MomentsScoreHandler(store moments.Store, engine *calculation.CalculationEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var target *int
		if v := r.URL.Query().Get("target"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "target must be an integer")
				return
			}
			target = &n
		}

		list, err := store.List(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, err)
			return
		}
		result, err := engine.Run(moments.MomentsInput(list, target))
		if err != nil {
			writeError(w, err)
			return
		}
		s := result.Summary()
		if err := store.RecordRun(r.Context(), chi.URLParam(r, "key"), domain.RunOf(s)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, calculationResponse{Calculator: s.Calculator, Result: result, Summary: s})
	}
}

func BadgesHandler(store moments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		list, err := store.List(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}
		runs, err := store.Runs(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"badges":        calculation.EvaluateBadges(list, runs),
			"longestStreak": calculation.LongestStreak(moments.Inputs(list)),
			"totalMoments":  len(list),
		})
	}
}
