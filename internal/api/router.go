package api

import (
	"net/http"

	"littlelemon/internal/cart"
	"littlelemon/internal/category"
	"littlelemon/internal/logger"
	"littlelemon/internal/menu"
	"littlelemon/internal/metrics"
	"littlelemon/internal/middleware"
	"littlelemon/internal/order"
	"littlelemon/internal/user"

	"github.com/go-chi/chi/v5"
)

// Deps carries the services the router dispatches to.
type Deps struct {
	CORSOrigin string
	Resolver   CallerResolver
	Limiter    *middleware.Limiter
	Users      user.Service
	Categories category.Service
	Menu       menu.Service
	Carts      cart.Service
	Orders     order.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(countRequests)
	r.Use(middleware.CORS(d.CORSOrigin))
	r.Use(middleware.AuthMiddleware)

	r.Get("/health", health)
	r.Get("/metrics", metricsSnapshot)

	authHandler := NewAuthHandler(d.Users)
	r.Route("/auth", func(r chi.Router) {
		r.With(d.Limiter.Middleware(middleware.TierLow)).Post("/users", authHandler.Register)
		r.With(d.Limiter.Middleware(middleware.TierMedium)).Post("/token/login", authHandler.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireCaller(d.Resolver))
		r.Use(d.Limiter.Middleware(middleware.TierHigh))

		NewMenuHandler(d.Menu).RegisterRoutes(r)
		NewCategoryHandler(d.Categories).RegisterRoutes(r)
		NewGroupHandler(d.Users).RegisterRoutes(r)
		NewCartHandler(d.Carts).RegisterRoutes(r)
		NewOrderHandler(d.Orders).RegisterRoutes(r)
	})

	return r
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		next.ServeHTTP(w, r)
	})
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func metricsSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Take())
}
