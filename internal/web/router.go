package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/mapuipa/internal/db"
	"github.com/jusunglee/mapuipa/internal/health"
	"github.com/jusunglee/mapuipa/internal/web/handlers"
	"github.com/jusunglee/mapuipa/internal/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	// APIKey guards DELETE routes; empty disables them.
	APIKey         string
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

type Router struct {
	repo    db.Repository
	log     *slog.Logger
	opts    Options
	limiter *middleware.IPRateLimiter
}

func NewRouter(repo db.Repository, log *slog.Logger, opts Options) *Router {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	return &Router{
		repo:    repo,
		log:     log,
		opts:    opts,
		limiter: middleware.NewRateLimiter(opts.RateLimit, opts.RateWindow),
	}
}

// Limiter exposes the shared limiter so the caller can run its cleanup loop.
func (r *Router) Limiter() *middleware.IPRateLimiter {
	return r.limiter
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	transliterateHandler := handlers.NewTransliterateHandler(r.log)
	transcriptionHandler := handlers.NewTranscriptionHandler(r.repo, r.log)

	read := func(h http.HandlerFunc, cache string) http.Handler {
		return middleware.Chain(h,
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl(cache),
		)
	}
	write := func(h http.HandlerFunc, extra ...middleware.Middleware) http.Handler {
		mws := append([]middleware.Middleware{
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
		}, extra...)
		return middleware.Chain(h, mws...)
	}

	mux.Handle("POST /api/v1/transliterate", write(transliterateHandler.Transliterate))
	mux.Handle("GET /api/v1/rules", read(transliterateHandler.Rules, "public, max-age=3600"))

	mux.Handle("GET /api/v1/transcriptions", read(transcriptionHandler.List, "no-store"))
	mux.Handle("POST /api/v1/transcriptions", write(transcriptionHandler.Create))
	mux.Handle("GET /api/v1/transcriptions/{id}", read(transcriptionHandler.Get, "public, max-age=60"))
	mux.Handle("GET /api/v1/transcriptions/{id}/export", read(transcriptionHandler.Export, "public, max-age=60"))
	mux.Handle("DELETE /api/v1/transcriptions/{id}", write(transcriptionHandler.Delete, middleware.APIKeyAuth(r.opts.APIKey)))

	mux.HandleFunc("GET /health", health.Handler)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.CORS(r.opts.AllowedOrigins)(mux)
}
