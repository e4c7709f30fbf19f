package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/gofinances/internal/http/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/http/backup"
	"github.com/MrJamesThe3rd/gofinances/internal/http/category"
	"github.com/MrJamesThe3rd/gofinances/internal/http/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
)

func New(
	allowedOrigins []string,
	authV1 *auth.Handler,
	categoriesV1 *category.Handler,
	transactionsV1 *transaction.Handler,
	summaryV1 *summary.Handler,
	backupV1 *backup.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authV1.Authenticate)

			r.Get("/me", authV1.Me)

			r.Route("/categories", categoriesV1.Routes)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/summary", summaryV1.Routes)

			r.Route("/backup", backupV1.Routes)
		})
	})

	return router
}
