// Package server exposes the sign-up form, its JSON API and the user card
// over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/openapi"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/html"
	"github.com/goliatone/go-signup/pkg/sink"
	"github.com/goliatone/go-signup/pkg/validation"
)

const defaultServiceName = "signup"

// Option configures a Server.
type Option func(*Server)

// WithRenderer sets the HTML renderer.
func WithRenderer(renderer *html.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithSink sets where accepted submissions are delivered.
func WithSink(target sink.Sink) Option {
	return func(s *Server) {
		if target != nil {
			s.sink = target
		}
	}
}

// WithValidator sets the validator used for messages.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithTranslator localises page copy; locale is the default when a request
// carries no ?lang= parameter.
func WithTranslator(t render.Translator, locale string) Option {
	return func(s *Server) {
		s.translator = t
		if locale != "" {
			s.locale = locale
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets the prometheus registry backing /metrics.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithControllerOptions appends options to every per-request controller.
func WithControllerOptions(options ...form.ControllerOption) Option {
	return func(s *Server) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}

// WithServiceName sets the name reported by /health.
func WithServiceName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.serviceName = name
		}
	}
}

// Server holds the router and its collaborators.
type Server struct {
	router            *gin.Engine
	renderer          *html.Renderer
	sink              sink.Sink
	validator         *validation.Validator
	translator        render.Translator
	locale            string
	logger            logrus.FieldLogger
	registry          *prometheus.Registry
	metrics           *Metrics
	apiDoc            *openapi3.T
	controllerOptions []form.ControllerOption
	serviceName       string
}

// New builds a Server with its routes registered.
func New(options ...Option) (*Server, error) {
	s := &Server{
		validator:   validation.New(),
		locale:      "en",
		logger:      logrus.StandardLogger(),
		serviceName: defaultServiceName,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.renderer == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.renderer = renderer
	}
	if s.sink == nil {
		s.sink = sink.NewLog(s.logger)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("server: register metrics: %w", err)
	}
	s.metrics = metrics
	s.apiDoc = openapi.Build()

	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(s.logger))
	router.Use(recoveryMiddleware(s.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": s.serviceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	router.GET("/openapi.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.apiDoc)
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/signup")
	})
	router.GET("/signup", s.handleSignupPage)
	router.POST("/signup", s.handleSignupForm)
	router.GET("/card", s.handleCardPage)

	api := router.Group("/api")
	api.POST("/signup", s.handleSignupAPI)
	api.POST("/validate", s.handleValidateAPI)
	api.POST("/form/events", s.handleEventsAPI)
	api.GET("/card", s.handleCardAPI)

	return router
}

// Run serves on cfg.Address() until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"service": s.serviceName,
		}).Info("Starting HTTP server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.WithField("service", s.serviceName).Info("Shutting down server...")

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.WithField("service", s.serviceName).Info("Server stopped")
	return nil
}
