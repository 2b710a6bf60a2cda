package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openlibro/biblio-api/internal/api"
	apiMiddleware "github.com/openlibro/biblio-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	bookHandler := api.NewBookHandler(app.catalogService, app.logger)
	loanHandler := api.NewLoanHandler(app.ledgerService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Post("/books", bookHandler.RegisterBook)
		r.Get("/books", bookHandler.ListBooks)
		r.Get("/books/{code}", bookHandler.GetBook)
		r.Put("/books/{code}/availability", bookHandler.SetAvailability)

		// Ledger endpoints
		r.Post("/loans", loanHandler.BorrowBook)
		r.Post("/loans/return", loanHandler.ReturnBook)
		r.Get("/loans", loanHandler.ListLoans)
		r.Get("/users/{userID}/loans", loanHandler.UserLoans)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
