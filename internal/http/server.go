// Package http provides the API server: router assembly, health endpoints,
// and graceful shutdown.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/config"
	identityHTTP "github.com/allisson/credvault/internal/identity/http"
	identityService "github.com/allisson/credvault/internal/identity/service"
	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
	"github.com/allisson/credvault/internal/metrics"
	vaultHTTP "github.com/allisson/credvault/internal/vault/http"
)

// Handlers groups the route handlers mounted on the API server.
type Handlers struct {
	Auth      *identityHTTP.AuthHandler
	User      *identityHTTP.UserHandler
	Privilege *identityHTTP.PrivilegeHandler
	Policy    *vaultHTTP.PolicyHandler
	Category  *vaultHTTP.CategoryHandler
	Secret    *vaultHTTP.SecretHandler
}

// Server represents the API HTTP server.
type Server struct {
	server          *http.Server
	db              *sql.DB
	cfg             *config.Config
	logger          *slog.Logger
	handlers        Handlers
	authUseCase     identityUseCase.AuthUseCase
	tokenService    identityService.TokenService
	metricsProvider *metrics.Provider
}

// NewServer creates a new API server. The router is assembled lazily on
// Start so tests can call SetupRouter directly.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	handlers Handlers,
	authUseCase identityUseCase.AuthUseCase,
	tokenService identityService.TokenService,
	metricsProvider *metrics.Provider,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:              db,
		cfg:             cfg,
		logger:          logger,
		handlers:        handlers,
		authUseCase:     authUseCase,
		tokenService:    tokenService,
		metricsProvider: metricsProvider,
	}
}

// SetupRouter assembles the Gin router with all middleware and routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Registration and login are the only unauthenticated endpoints.
	authRoutes := v1.Group("/auth")
	if s.cfg.RateLimitAuthEnabled {
		authRoutes.Use(identityHTTP.AuthRateLimitMiddleware(
			s.cfg.RateLimitAuthRequestsPerSec,
			s.cfg.RateLimitAuthBurst,
			s.logger,
		))
	}
	authRoutes.POST("/register", s.handlers.Auth.Register)
	authRoutes.POST("/login", s.handlers.Auth.Login)

	// Everything else requires a valid bearer token and the admin flag.
	protected := v1.Group("")
	protected.Use(identityHTTP.AuthenticationMiddleware(s.authUseCase, s.tokenService, s.logger))
	protected.Use(identityHTTP.AdminRequiredMiddleware(s.logger))

	users := protected.Group("/users")
	users.POST("", s.handlers.User.Create)
	users.GET("", s.handlers.User.List)
	users.GET("/:id", s.handlers.User.Get)
	users.PATCH("/:id", s.handlers.User.Update)
	users.DELETE("/:id", s.handlers.User.Delete)

	privileges := protected.Group("/privileges")
	privileges.POST("", s.handlers.Privilege.Create)
	privileges.GET("", s.handlers.Privilege.List)
	privileges.GET("/:id", s.handlers.Privilege.Get)
	privileges.PATCH("/:id", s.handlers.Privilege.Update)
	privileges.DELETE("/:id", s.handlers.Privilege.Delete)

	policies := protected.Group("/password-policies")
	policies.POST("", s.handlers.Policy.Create)
	policies.GET("", s.handlers.Policy.List)
	policies.GET("/:id", s.handlers.Policy.Get)
	policies.PATCH("/:id", s.handlers.Policy.Update)
	policies.DELETE("/:id", s.handlers.Policy.Delete)

	categories := protected.Group("/password-categories")
	categories.POST("", s.handlers.Category.Create)
	categories.GET("", s.handlers.Category.List)
	categories.GET("/:id", s.handlers.Category.Get)
	categories.PATCH("/:id", s.handlers.Category.Update)
	categories.DELETE("/:id", s.handlers.Category.Delete)

	secrets := protected.Group("/system-passwords")
	secrets.POST("", s.handlers.Secret.Create)
	secrets.GET("", s.handlers.Secret.List)
	secrets.GET("/:id", s.handlers.Secret.Get)
	secrets.PATCH("/:id", s.handlers.Secret.Update)
	secrets.DELETE("/:id", s.handlers.Secret.Delete)

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start assembles the router and starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.SetupRouter()

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK
	overall := "ready"

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else {
		components["database"] = "ok"
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}
