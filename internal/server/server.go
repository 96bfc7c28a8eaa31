package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retetar/backend/config"
	"github.com/retetar/backend/internal/api"
	"github.com/retetar/backend/internal/database"
	"github.com/retetar/backend/internal/middleware"
	"github.com/retetar/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New wires the HTTP surface: middleware, route registration, and the
// underlying http.Server.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	auth *service.AuthService,
	generator *service.GeneratorService,
	quota *service.QuotaService,
	recipes *service.RecipeService,
) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.CORS(nil))

	s := &Server{
		router: router,
		db:     db,
		redis:  redisClient,
		logger: logger,
	}

	router.GET("/health", s.health)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(auth).RegisterRoutes(v1)
	api.NewGenerateHandler(generator, quota, auth, limiter).RegisterRoutes(v1)
	api.NewRecipeHandler(recipes, auth).RegisterRoutes(v1)

	s.http = &http.Server{
		Addr:         net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "ok"}

	if err := database.HealthCheck(ctx, s.db); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	} else {
		checks["redis"] = "disabled"
	}

	c.JSON(status, checks)
}
