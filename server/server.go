package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	facsearch "github.com/poiesic/facsearch"
	"github.com/poiesic/facsearch/core"
)

// Engine is the part of the search engine the HTTP layer needs.
type Engine interface {
	Search(ctx context.Context, query string, topK int, useHybrid bool) ([]*core.SearchResult, error)
	Compare(ctx context.Context, query string, topK int) (*facsearch.Comparison, error)
	Stats() (*facsearch.Stats, error)
	Record(name string) (*core.FacultyRecord, error)
	Ready() bool
}

var _ Engine = (*facsearch.Engine)(nil)

// Server serves the search API.
type Server struct {
	engine Engine
	logger *slog.Logger
	router *gin.Engine
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// ErrEngineRequired is returned when a server is created without an engine.
var ErrEngineRequired = errors.New("engine required")

// New creates a server around the given engine.
func New(engine Engine, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Server{
		engine: engine,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "server")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	{
		api.POST("/search", s.handleSearch)
		api.POST("/compare", s.handleCompare)
		api.GET("/stats", s.handleStats)
		api.GET("/faculty/:name", s.handleFaculty)
	}
	s.router = router

	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestLog logs one line per request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(started))
	}
}
