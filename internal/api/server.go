// Package api serves the catalog database over HTTP for browser front ends
// and for remote planner clients.
package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Catalog is the read side of the catalog database the API exposes.
type Catalog interface {
	service.Provider
	GetCourseByCode(ctx context.Context, code string) (*model.Course, error)
	GetMajor(ctx context.Context, id int) (*model.Major, error)
}

// Config controls the HTTP server.
type Config struct {
	// TLS, when set, serves HTTPS with its certificates.
	TLS         *tls.Config
	Addr        string
	CORSOrigins []string
}

// Server is the catalog API server.
type Server struct {
	catalog Catalog
	logger  *slog.Logger
	engine  *gin.Engine
	config  Config
}

// NewServer builds the router. A nil logger uses slog.Default.
func NewServer(catalog Catalog, config Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		catalog: catalog,
		config:  config,
		logger:  logger.With("component", "api"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(corsMiddleware(s.config.CORSOrigins))

	r.GET("/healthcheck", s.healthCheck)

	api := r.Group("/api")
	{
		api.GET("/majors", s.listMajors)
		api.GET("/majors/:id/requirements", s.majorRequirements)
		api.GET("/courses", s.listCourses)
		api.POST("/courses/eligible", s.eligibleCourses)
		api.GET("/courses/:code", s.getCourse)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         s.config.TLS,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("catalog API listening", "addr", s.config.Addr, "tls", s.config.TLS != nil)
		var err error
		if s.config.TLS != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("catalog API failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down catalog API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down catalog API: %w", err)
	}
	return nil
}
