// Package api wires the HTTP surface: router, handlers, and middleware.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tvandenberg/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/tvandenberg/portfolio-tracker/internal/api/middleware"
	"github.com/tvandenberg/portfolio-tracker/internal/config"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
)

// Services bundles the service-layer dependencies of the router.
type Services struct {
	System      *service.SystemService
	Portfolio   *service.PortfolioService
	Position    *service.PositionService
	Transaction *service.TransactionService
	Quote       *service.QuoteService
	Fx          *service.FxService
	Settings    *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
		positionHandler := handlers.NewPositionHandler(svc.Position, svc.Portfolio)
		transactionHandler := handlers.NewTransactionHandler(svc.Transaction)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/summary", portfolioHandler.PortfolioSummary)
				r.Get("/allocation", portfolioHandler.PortfolioAllocation)
				r.Get("/position", positionHandler.PositionsPerPortfolio)
				r.Post("/position", positionHandler.CreatePosition)
			})
		})

		r.Route("/position/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", positionHandler.GetPosition)
			r.Delete("/", positionHandler.DeletePosition)
			r.Get("/transaction", transactionHandler.TransactionsPerPosition)
		})

		r.Route("/transaction", func(r chi.Router) {
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/quote", func(r chi.Router) {
			quoteHandler := handlers.NewQuoteHandler(svc.Quote)
			r.Post("/refresh", quoteHandler.Refresh)
			r.Get("/{symbol}", quoteHandler.GetQuote)
		})

		r.Route("/fx", func(r chi.Router) {
			fxHandler := handlers.NewFxHandler(svc.Fx)
			r.Get("/", fxHandler.Rates)
			r.Post("/refresh", fxHandler.Refresh)
			r.Put("/{currency}", fxHandler.UpdateRate)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(svc.Settings)
			r.Put("/marketdata-key", settingsHandler.UpdateMarketDataKey)
		})
	})

	return r
}
