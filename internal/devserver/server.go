// internal/devserver/server.go
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/pkg/logger"
)

// Server is a development stand-in for the remote backend. It serves
// the same contract the client core consumes, backed by in-memory
// state, so the app and its tests run without the real backend.
type Server struct {
	config     *config.Config
	gin        *gin.Engine
	httpServer *http.Server
	log        *logrus.Logger
	handlers   *Handlers
}

// NewServer creates a development backend server
func NewServer(cfg *config.Config) *Server {
	log := logger.New(cfg)
	return &Server{
		config:   cfg,
		log:      log,
		handlers: NewHandlers(log),
	}
}

// Engine builds and returns the configured gin engine. Tests mount it
// on an httptest server.
func (s *Server) Engine() *gin.Engine {
	if s.gin != nil {
		return s.gin
	}

	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.TestMode)
	}

	s.gin = gin.New()
	s.gin.Use(gin.Recovery())
	s.gin.Use(requestLogger(s.log))

	s.gin.GET("/health", s.healthCheck)

	apiV1 := s.gin.Group("/api/v1")
	s.handlers.Register(apiV1)

	return s.gin
}

// Start starts the development backend
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.DevServer.Port,
		Handler:      s.Engine(),
		ReadTimeout:  s.config.DevServer.ReadTimeout,
		WriteTimeout: s.config.DevServer.WriteTimeout,
		IdleTimeout:  s.config.DevServer.IdleTimeout,
	}

	s.log.WithField("port", s.config.DevServer.Port).Info("🚀 Dev backend starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start dev backend: %w", err)
	}
	return nil
}

// Stop gracefully stops the development backend
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown dev backend: %w", err)
	}
	s.log.Info("✅ Dev backend stopped gracefully")
	return nil
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// requestLogger logs every request through logrus
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"latency":     time.Since(start),
			"client_ip":   c.ClientIP(),
		})

		if c.Writer.Status() >= 500 {
			entry.Error("HTTP request completed with server error")
		} else if c.Writer.Status() >= 400 {
			entry.Warn("HTTP request completed with client error")
		} else {
			entry.Debug("HTTP request completed")
		}
	}
}
