package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/adikrishnan/expense-ledger/internal/category"
	"github.com/adikrishnan/expense-ledger/internal/currency"
	"github.com/adikrishnan/expense-ledger/internal/expense"
	"github.com/adikrishnan/expense-ledger/internal/transport/middleware"
	"github.com/adikrishnan/expense-ledger/internal/transport/swagger"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	ownerID uuid.UUID,
	expenseHandler *expense.Handler,
	categoryHandler *category.Handler,
	currencyHandler *currency.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec at root plus swagger UI over it
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// all ledger operations are scoped to the configured owner
		r.Group(func(or chi.Router) {
			or.Use(middleware.OwnerScope(ownerID))

			or.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.AddExpense)
				er.Get("/", expenseHandler.ListExpenses)
				er.Get("/{id}", expenseHandler.GetExpense)
				er.Patch("/{id}", expenseHandler.UpdateExpense)
				er.Delete("/{id}", expenseHandler.DeleteExpense)
			})

			or.Get("/categories", categoryHandler.ListCategories)
			or.Get("/categories/taxonomy", categoryHandler.Taxonomy)

			or.Get("/convert", currencyHandler.Convert)
		})
	})
}
