package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/compare"
	"github.com/rgehrsitz/famcalc/internal/config"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/moments"
	"github.com/rgehrsitz/famcalc/internal/output"
	"github.com/rgehrsitz/famcalc/internal/transform"
)

type calculatorInfo struct {
	Name  domain.CalculatorName `json:"name"`
	Title string                `json:"title"`
}

type calculationResponse struct {
	Calculator domain.CalculatorName `json:"calculator"`
	Result     domain.Result         `json:"result"`
	Summary    domain.Summary        `json:"summary"`
}

// ListCalculatorsHandler lists the calculators in presentation order.
func ListCalculatorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]calculatorInfo, 0, len(domain.AllCalculators))
		for _, c := range domain.AllCalculators {
			out = append(out, calculatorInfo{Name: c, Title: c.Title()})
		}
		writeJSON(w, http.StatusOK, map[string]any{"calculators": out})
	}
}

func runFromBody(engine *calculation.CalculationEngine, w http.ResponseWriter, r *http.Request) (domain.Result, error) {
	name := domain.CalculatorName(chi.URLParam(r, "name"))
	return engine.RunNamed(name, func(v any) error { return decodeBody(w, r, v) })
}

// RunCalculatorHandler runs the calculator named in the path on the JSON body.
// With a family query parameter the run is added to that family's history.
func RunCalculatorHandler(engine *calculation.CalculationEngine, store moments.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := runFromBody(engine, w, r)
		if err != nil {
			writeError(w, err)
			return
		}
		s := result.Summary()
		if family := r.URL.Query().Get("family"); family != "" && store != nil {
			if err := store.RecordRun(r.Context(), family, domain.RunOf(s)); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, calculationResponse{Calculator: s.Calculator, Result: result, Summary: s})
	}
}

var reportContentTypes = map[string]string{
	"console":  "text/plain; charset=utf-8",
	"json":     "application/json",
	"csv":      "text/csv; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"html":     "text/html; charset=utf-8",
}

// ReportHandler runs a calculator and renders its summary with the formatter
// named by the format query parameter (html by default).
func ReportHandler(engine *calculation.CalculationEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "html"
		}
		f := output.GetFormatterByName(format)
		if f == nil {
			writeErr(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
			return
		}

		result, err := runFromBody(engine, w, r)
		if err != nil {
			writeError(w, err)
			return
		}
		data, err := f.Format(result.Summary())
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", reportContentTypes[f.Name()])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// CompareHandler compares the scenarios of a JSON scenario file. The base
// query parameter picks another scenario as the base.
func CompareHandler(parser *config.InputParser, comparer *compare.CompareEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		sf, err := parser.ParseScenarios(body, true)
		if err != nil {
			writeScenarioError(w, err)
			return
		}

		var compSet *compare.ComparisonSet
		if base := r.URL.Query().Get("base"); base != "" {
			names := []string{sf.Base.Name}
			for _, s := range sf.Scenarios {
				names = append(names, s.Name)
			}
			compSet, err = comparer.CompareScenarios(r.Context(), sf, base, names)
		} else {
			compSet, err = comparer.Compare(r.Context(), sf)
		}
		if err != nil {
			writeScenarioError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, compSet)
	}
}

// writeScenarioError treats scenario file problems as client errors.
func writeScenarioError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, calculation.ErrUnknownCalculator) {
		writeError(w, err)
		return
	}
	writeErr(w, http.StatusBadRequest, err.Error())
}

type templateInfo struct {
	Name        string                `json:"name"`
	Calculator  domain.CalculatorName `json:"calculator"`
	Description string                `json:"description"`
}

// TemplatesHandler lists the what-if templates, optionally only those of the
// calculator query parameter.
func TemplatesHandler(comparer *compare.CompareEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.CalculatorName(r.URL.Query().Get("calculator"))
		if filter != "" && !filter.IsValid() {
			writeError(w, fmt.Errorf("%w: %q", calculation.ErrUnknownCalculator, filter))
			return
		}
		out := []templateInfo{}
		for _, name := range domain.AllCalculators {
			if filter != "" && name != filter {
				continue
			}
			for _, t := range comparer.TemplateRegistry.ForCalculator(name) {
				out = append(out, templateInfo{Name: t.Name, Calculator: t.Calculator, Description: t.Description})
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"templates": out})
	}
}

// WhatIfHandler compares the input in the body with copies changed by the
// templates in the with query parameter and the repeated transform
// parameters.
func WhatIfHandler(comparer *compare.CompareEngine) http.HandlerFunc {
	registry := transform.NewTransformRegistry()
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		options := compare.WhatIfOptions{Templates: transform.ParseTemplateList(q.Get("with"))}
		for _, spec := range q["transform"] {
			t, err := registry.ParseTransformSpec(spec)
			if err != nil {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
			options.Transforms = append(options.Transforms, t)
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

		base := config.NamedInput{Name: "base", Input: input}
		if name := q.Get("base"); name != "" {
			base.Name = name
		}
		compSet, err := comparer.CompareWhatIf(r.Context(), base, options)
		if err != nil {
			writeScenarioError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, compSet)
	}
}
