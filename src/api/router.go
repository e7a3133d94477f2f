package api

import (
	"net/http"

	"finance-tracker-server/src/handlers"
	"finance-tracker-server/src/middleware"

	"github.com/go-chi/chi/v5"
)

type Options struct {
	AllowedOrigins []string
	DemoMode       bool
}

func NewRouter(env *handlers.Env, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(env.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(opts.DemoMode))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(env))
		r.Post("/register", handlers.Register(env))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(env.JWTSecret)).Group(func(r chi.Router) {
			// User
			r.Get("/user", handlers.GetUser(env))
			r.Delete("/user", handlers.DeleteUser(env))

			// Dashboard
			r.Get("/finance", handlers.GetFinance(env))
			r.Get("/summary", handlers.GetSummary(env))
			r.Get("/categories", handlers.GetCategories(env))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(env))
			r.Post("/transactions", handlers.CreateTransaction(env))
			r.Get("/transactions/categories", handlers.GetExpenseCategories(env))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(env))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(env))

			// Investments
			r.Get("/investments", handlers.GetInvestments(env))
			r.Post("/investments", handlers.CreateInvestment(env))
			r.Put("/investments/{investment_id}", handlers.UpdateInvestment(env))
			r.Delete("/investments/{investment_id}", handlers.DeleteInvestment(env))
			r.Post("/investments/{investment_id}/refresh-price", handlers.RefreshInvestmentPrice(env))

			// Charts
			r.Get("/charts/expenses.png", handlers.GetExpenseChart(env))
			r.Get("/charts/investments.png", handlers.GetInvestmentChart(env))
		})

		// Super Admin Routes
		r.With(middleware.JWTAuthMiddleware(env.JWTSecret), middleware.SuperAdminMiddleware).Group(func(r chi.Router) {
			r.Post("/admin/cache/clear/{cache_name}", handlers.ClearCache(env))
		})
	})

	return r
}
