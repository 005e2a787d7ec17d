package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockcast/internal/config"
	"stockcast/internal/markets"
	"stockcast/internal/pipeline"
	"stockcast/pkg/model"
)

// Runner executes one prediction run
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*model.Report, error)
}

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	runner  Runner
	catalog *markets.Catalog
	logger  *zap.Logger
	now     func() time.Time
	srv     *http.Server
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, runner Runner, catalog *markets.Catalog, logger *zap.Logger) *Server {
	return &Server{
		config:  cfg,
		runner:  runner,
		catalog: catalog,
		logger:  logger.With(zap.String("component", "web")),
		now:     time.Now,
	}
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/markets", s.handleMarkets)
		r.Get("/markets/{exchange}", s.handleMarket)
		r.Get("/predict", s.handlePredict)
	})

	return r
}

// Start listens on the configured address until Shutdown
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting API server", zap.String("listen", s.config.Listen))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// requestLogger tags each request with a correlation id and logs its outcome
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			start = time.Now()
			cid   = uuid.NewString()
			ww    = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		)
		ww.Header().Set("X-Correlation-ID", cid)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("cid", cid),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// corsMiddleware adds CORS headers for local development
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
