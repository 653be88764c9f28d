package http

import (
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-widget/internal/health"
	"github.com/kjstillabower/weather-widget/internal/observability"
)

// RouterOptions configures the middleware applied to the /weather subtree.
type RouterOptions struct {
	Limiter        *rate.Limiter
	Monitor        *health.Monitor
	RequestTimeout time.Duration
}

// NewRouter wires /health, /metrics and /weather/{location} with the middleware chain.
// Rate limiting and the request timeout only apply to /weather.
func NewRouter(h *Handler, logger *zap.Logger, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)
	router.HandleFunc("/health", h.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler()).Methods("GET")

	weatherRouter := router.PathPrefix("/weather").Subrouter()
	weatherRouter.Use(RateLimitMiddleware(opts.Limiter, opts.Monitor))
	if opts.RequestTimeout > 0 {
		weatherRouter.Use(TimeoutMiddleware(opts.RequestTimeout))
	}
	weatherRouter.HandleFunc("/{location}", h.GetWeather).Methods("GET")
	return router
}
