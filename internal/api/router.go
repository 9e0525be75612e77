package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/handlers"
	custommiddleware "github.com/fiitrack/fii-portfolio-backend/internal/api/middleware"
	"github.com/fiitrack/fii-portfolio-backend/internal/auth"
	"github.com/fiitrack/fii-portfolio-backend/internal/config"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
)

// RouterDeps collects the services the router wires into handlers.
type RouterDeps struct {
	SystemService      *service.SystemService
	AuthService        *service.AuthService
	FiiService         *service.FiiService
	TransactionService *service.TransactionService
	DividendService    *service.DividendService
	HoldingsService    *service.HoldingsService
	JWTManager         *auth.JWTManager
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps RouterDeps, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// System namespace, unauthenticated
	r.Route("/api/system", func(r chi.Router) {
		systemHandler := handlers.NewSystemHandler(deps.SystemService)
		r.Get("/health", systemHandler.Health)
		r.Get("/version", systemHandler.Version)
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		authHandler := handlers.NewAuthHandler(deps.AuthService)

		// Credential and token endpoints, unauthenticated
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Everything below requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireAuth(deps.JWTManager))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/fiis", func(r chi.Router) {
				fiiHandler := handlers.NewFiiHandler(deps.FiiService)
				r.Get("/", fiiHandler.GetFiis)
				r.Post("/", fiiHandler.CreateFii)
				r.Get("/{uuid}", fiiHandler.GetFii)
				r.Put("/{uuid}", fiiHandler.UpdateFii)
				r.Delete("/{uuid}", fiiHandler.DeleteFii)
			})

			r.Route("/transactions", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(deps.TransactionService)
				r.Get("/", transactionHandler.GetTransactions)
				r.Post("/", transactionHandler.CreateTransaction)
				r.Get("/{uuid}", transactionHandler.GetTransaction)
				r.Put("/{uuid}", transactionHandler.UpdateTransaction)
				r.Delete("/{uuid}", transactionHandler.DeleteTransaction)
			})

			r.Route("/dividends", func(r chi.Router) {
				dividendHandler := handlers.NewDividendHandler(deps.DividendService)
				r.Get("/", dividendHandler.GetDividends)
				r.Post("/", dividendHandler.CreateDividend)
				r.Get("/summary/monthly", dividendHandler.MonthlySummary)
				r.Get("/{uuid}", dividendHandler.GetDividend)
				r.Put("/{uuid}", dividendHandler.UpdateDividend)
				r.Delete("/{uuid}", dividendHandler.DeleteDividend)
			})

			r.Route("/holdings", func(r chi.Router) {
				holdingsHandler := handlers.NewHoldingsHandler(deps.HoldingsService)
				r.Get("/", holdingsHandler.GetHoldings)
			})
		})
	})

	return r
}
