package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ficore/internal/http/home"
	"github.com/MrJamesThe3rd/ficore/internal/http/invoice"
	"github.com/MrJamesThe3rd/ficore/internal/http/matching"
	"github.com/MrJamesThe3rd/ficore/internal/http/transaction"
)

func New(
	allowedOrigins []string,
	homeH *home.Handler,
	invoicesH *invoice.Handler,
	transactionsH *transaction.Handler,
	matchingH *matching.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))

	homeH.Routes(router)

	router.Route("/invoices", invoicesH.Routes)

	router.Route("/transactions", func(r chi.Router) {
		matchingH.Routes(r)
		transactionsH.Routes(r)
	})

	return router
}
