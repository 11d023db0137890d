// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/domain/cart"
	"github.com/your-org/ticketing-storefront/internal/domain/checkout"
	"github.com/your-org/ticketing-storefront/internal/domain/event"
	"github.com/your-org/ticketing-storefront/internal/domain/order"
	"github.com/your-org/ticketing-storefront/internal/domain/organizer"
	"github.com/your-org/ticketing-storefront/internal/domain/payment"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/domain/ticket"
	"github.com/your-org/ticketing-storefront/internal/domain/user"
	"github.com/your-org/ticketing-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/ticketing-storefront/internal/interfaces/http/routes"
	"github.com/your-org/ticketing-storefront/internal/pkg/pdf"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	redisClient *redis.Client
	logger      *logrus.Logger
	sessions    *session.Store
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *Server {
	return &Server{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin engine
	s.gin = gin.New()

	if len(s.config.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(s.config.Security.TrustedProxies); err != nil {
			return fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	deps := s.buildDependencies()

	// Setup middleware
	s.setupMiddleware(deps)

	// Setup routes
	s.setupRoutes(deps)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Infof("HTTP server starting on port %s", s.config.Server.Port)
	s.logger.Infof("Upstream API: %s", s.config.Upstream.BaseURL)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// buildDependencies wires the upstream adapter, the session store and every
// domain service. The session store registers itself as the adapter's
// auth-rejected hook so an upstream 401 clears the session exactly once.
func (s *Server) buildDependencies() *routes.Dependencies {
	api := upstream.NewClient(s.config, s.logger)

	storage := session.NewRedisStorage(s.redisClient, s.config)
	sessions := session.NewStore(api, storage, s.logger)
	api.SetAuthRejectedHook(sessions.HandleAuthRejected)
	s.sessions = sessions

	carts := cart.NewStore()
	orders := order.NewStore()

	return &routes.Dependencies{
		Config:     s.config,
		Sessions:   sessions,
		Carts:      carts,
		Orders:     orders,
		Events:     event.NewService(api),
		Tickets:    ticket.NewService(api),
		Users:      user.NewService(api, sessions),
		Organizers: organizer.NewService(api),
		Payments:   payment.NewService(api),
		Checkout:   checkout.NewService(s.config, api, carts, orders, s.logger),
		PDF:        pdf.NewService(s.config),
	}
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware(deps *routes.Dependencies) {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.config))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// CORS middleware
	s.gin.Use(middleware.CORS(s.config))

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())

	// Rate limiting middleware
	s.gin.Use(middleware.RateLimit(s.config, s.redisClient.GetClient()))

	// Request size limit middleware
	s.gin.Use(middleware.RequestSizeLimit(10 << 20)) // 10MB limit

	// Timeout middleware
	s.gin.Use(middleware.Timeout(30 * time.Second))

	// Client session middleware: cookie, session restore
	s.gin.Use(middleware.ClientSession(s.config, deps.Sessions))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes(deps *routes.Dependencies) {
	// Health check endpoints (no session required)
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	// API v1 routes
	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, deps)

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     s.config.App.Name,
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"auth":      "/api/v1/auth",
					"events":    "/api/v1/events",
					"cart":      "/api/v1/cart",
					"checkout":  "/api/v1/checkout",
					"orders":    "/api/v1/orders",
					"tickets":   "/api/v1/tickets",
					"organizer": "/api/v1/organizer",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.redisClient.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "redis ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}
