// Package httpapi serves the calculators and the moments log over HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/compare"
	"github.com/rgehrsitz/famcalc/internal/config"
	"github.com/rgehrsitz/famcalc/internal/moments"
)

// Deps are the services the handlers run against.
type Deps struct {
	Engine *calculation.CalculationEngine
	Store  moments.Store
}

// NewRouter builds the API router.
func NewRouter(cfg config.ServerConfig, deps Deps) http.Handler {
	parser := config.NewInputParser()
	comparer := compare.NewCompareEngine(deps.Engine)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/calculators", ListCalculatorsHandler())
		r.Post("/calculators/{name}", RunCalculatorHandler(deps.Engine, deps.Store))
		r.Post("/calculators/{name}/report", ReportHandler(deps.Engine))
		r.Post("/compare", CompareHandler(parser, comparer))
		r.Get("/compare/templates", TemplatesHandler(comparer))
		r.Post("/compare/whatif/{name}", WhatIfHandler(comparer))
		r.Post("/goal/{name}", GoalHandler(deps.Engine))

		r.Get("/quiz/questions", QuizQuestionsHandler())

		r.Route("/moments/{key}", func(r chi.Router) {
			r.Get("/", ListMomentsHandler(deps.Store))
			r.Post("/", AddMomentHandler(deps.Store))
			r.Delete("/", ClearMomentsHandler(deps.Store))
			r.Get("/score", MomentsScoreHandler(deps.Store, deps.Engine))
			r.Get("/badges", BadgesHandler(deps.Store))
			r.Delete("/{id}", RemoveMomentHandler(deps.Store))
		})
	})
	return r
}
