package main

import (
	"context"
	"net/http"
	"time"

	"movieapi/internal/config"
	"movieapi/internal/httpx"
	"movieapi/internal/lookup"
	"movieapi/internal/metrics"
	"movieapi/internal/movie"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type dependencies struct {
	movies  *movie.HTTPHandler
	lookups *lookup.HTTPHandler
	db      pinger
}

// newRouter registers every route and wraps the mux in the middleware chain.
// The returned func releases background resources held by the middleware.
func newRouter(cfg config.Config, deps dependencies) (http.Handler, func()) {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := deps.db.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())

	router.Handle("/api/movies", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(deps.movies.Search),
	}))
	router.Handle("/api/movies/{imdbId}", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(deps.movies.Get),
	}))

	if deps.lookups != nil {
		router.HandleFunc("GET /v1/lookups", deps.lookups.List)
	}

	chain := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
	}
	stop := func() {}
	if cfg.RateLimit.RPS > 0 {
		rl := httpx.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
		chain = append(chain, rl.Middleware)
		stop = rl.Stop
	}
	chain = append(chain, httpx.MetricsMiddleware)

	return httpx.Chain(router, chain...), stop
}
