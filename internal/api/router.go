package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bariskara/product-api/internal/api/handlers"
	"github.com/bariskara/product-api/internal/api/httpx"
	"github.com/bariskara/product-api/internal/api/validate"
	"github.com/bariskara/product-api/internal/auth"
	"github.com/bariskara/product-api/internal/middleware"
	"github.com/bariskara/product-api/internal/services"
)

func NewRouter(authSvc *services.AuthService, productSvc *services.ProductService, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(authSvc)
	productH := handlers.NewProductHandler(productSvc)
	gate := middleware.NewTokenGate(tm)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Welcome to the Product Management API!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.ValidateBody(validate.Auth)).Post("/login", authH.Login)
		r.With(middleware.ValidateBody(validate.Auth)).Post("/register", authH.Register)

		r.Route("/products", func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.With(middleware.ValidateBody(validate.ProductCreate)).Post("/", productH.Create)
			r.Get("/{id}", productH.Get)
			r.With(middleware.ValidateBody(validate.ProductUpdate)).Put("/{id}", productH.Update)
			r.Delete("/{id}", productH.Delete)
		})
	})

	// every unmatched method/path gets the JSON not-found envelope
	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.NotFound)

	return r
}
