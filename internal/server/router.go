package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"steam-cycle-viewer/internal/cycleweb"
	"steam-cycle-viewer/internal/handlers"
	"steam-cycle-viewer/internal/observability"
)

func NewRouter(cycles *cycleweb.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	cycleweb.RegisterRoutes(r, cycles)

	return r
}
