// Package server is the HTTP surface of the price tool: the public price
// lookup endpoint plus the health and cache admin endpoints.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sharad-mishra/universal-price-tool/internal/cache"
	"github.com/sharad-mishra/universal-price-tool/internal/metrics"
	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// PriceGetter is the pricing pipeline as the HTTP layer sees it.
type PriceGetter interface {
	GetPrices(ctx context.Context, countryCode, query string) (*model.PriceResponse, error)
}

// Server routes HTTP requests to the pricing pipeline and cache admin.
type Server struct {
	router     *chi.Mux
	pricing    PriceGetter
	cache      cache.Cache
	metrics    *metrics.Metrics
	log        zerolog.Logger
	production bool
}

// Options configures a Server.
type Options struct {
	Pricing PriceGetter
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Log     zerolog.Logger
	// Production suppresses internal error detail in 500 responses.
	Production bool
}

// New creates a Server with its routes mounted.
func New(opts Options) *Server {
	s := &Server{
		pricing:    opts.Pricing,
		cache:      opts.Cache,
		metrics:    opts.Metrics,
		log:        opts.Log.With().Str("component", "server").Logger(),
		production: opts.Production,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.accessLog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/prices", s.handlePrices)
		r.Get("/health", s.handleHealth)
		r.Get("/cache/stats", s.handleCacheStats)
		r.Post("/cache/flush", s.handleCacheFlush)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{
			Error:     "Not found",
			RequestID: requestIDFrom(r.Context()),
		})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
