/**
 * @description
 * This file sets up the HTTP router for the accounts-service using the
 * `chi` routing library. It defines all the API routes and applies the
 * shared middleware.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: The routing library.
 * - The service's internal packages for handlers.
 */
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new HTTP router.
func NewRouter(accounts *AccountHandler, diagnostics *DiagnosticsHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/create", accounts.CreateAccount)
		r.Get("/fetch", accounts.FetchAccount)
		r.Put("/update", accounts.UpdateAccount)
		r.Delete("/delete", accounts.DeleteAccount)

		r.Get("/build-info", diagnostics.BuildInfo)
		r.Get("/env-info", diagnostics.EnvInfo)
		r.Get("/contact-info", diagnostics.GetContactInfo)
	})

	return r
}
