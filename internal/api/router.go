package api

import (
	"context"
	"lng-supply-optimizer/internal/api/handlers"
	"lng-supply-optimizer/internal/services"
	"net/http"

	"github.com/rs/cors"
)

// RouterOptions carries the HTTP-surface settings from config.
type RouterOptions struct {
	DefaultTwinRatios []string
	RateLimit         float64
	RateBurst         int
	CORSOrigins       []string
	// Optional; /metrics is only mounted when set.
	Metrics http.Handler

	// Reported by /health; Ping is optional.
	ReferenceSource string
	RunStoreBackend string
	Ping            func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(opt *services.Optimizer, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := handlers.NewOptimizeHandler(opt, opts.DefaultTwinRatios)

	limited := rateLimit(opts.RateLimit, opts.RateBurst)

	healthHandler := &handlers.HealthHandler{
		ReferenceSource: opts.ReferenceSource,
		RunStore:        opts.RunStoreBackend,
		Ping:            opts.Ping,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/optimize", limited(http.HandlerFunc(optimizeHandler.Optimize)))
	mux.Handle("/optimize/twin", limited(http.HandlerFunc(optimizeHandler.OptimizeTwin)))
	mux.HandleFunc("/runs/{key}", optimizeHandler.Run)
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics)
	}

	var h http.Handler = loggingMiddleware(mux)
	h = requestIDMiddleware(h)

	if len(opts.CORSOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
		}).Handler(h)
	}
	return h
}
