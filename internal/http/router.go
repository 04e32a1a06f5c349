// Package http wires the chi router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/overdruiven/finance-api/internal/http/importcsv"
	"github.com/overdruiven/finance-api/internal/http/middleware"
	"github.com/overdruiven/finance-api/internal/http/transactions"
)

// Config carries the router's cross-cutting settings.
type Config struct {
	JWTSecret      []byte
	AllowedOrigins []string
	MetricsEnabled bool
}

func New(
	cfg Config,
	transactionsV1 *transactions.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(c.Handler)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Route("/transactions", func(r chi.Router) {
			transactionsV1.Routes(r)
			importV1.Routes(r)
		})
	})

	return router
}
