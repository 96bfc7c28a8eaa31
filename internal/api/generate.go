package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retetar/backend/internal/middleware"
	"github.com/retetar/backend/internal/service"
)

// GenerateHandler exposes recipe generation and quota lookups.
type GenerateHandler struct {
	generator *service.GeneratorService
	quota     *service.QuotaService
	auth      *service.AuthService
	limiter   *middleware.RateLimiter
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(generator *service.GeneratorService, quota *service.QuotaService, auth *service.AuthService, limiter *middleware.RateLimiter) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		quota:     quota,
		auth:      auth,
		limiter:   limiter,
	}
}

// RegisterRoutes registers the generation routes
func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware(h.auth))
	{
		generate := authed.Group("/recipes/generate")
		if h.limiter != nil {
			generate.Use(h.limiter.Middleware())
		}
		generate.POST("", h.Generate)

		authed.GET("/usage", h.Usage)
	}
}

type generateRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
}

// Generate runs one generation for the authenticated user and returns the
// recipe. The recipe is not persisted; saving is a separate, explicit call.
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "empty_input",
			"message": "Te rog să introduci cel puțin un ingredient!",
		})
		return
	}

	recipe, err := h.generator.Generate(c.Request.Context(), userID, req.Ingredients)
	if err != nil {
		status, code, message := generationFailure(err)
		c.JSON(status, gin.H{"error": code, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Usage reports today's quota consumption for the authenticated user.
func (h *GenerateHandler) Usage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	used, err := h.quota.CountToday(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read usage"})
		return
	}

	remaining := service.DailyGenerationLimit - used
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":     service.DailyGenerationLimit,
		"used":      used,
		"remaining": remaining,
	})
}

// generationFailure maps the orchestrator error taxonomy to an HTTP status,
// a stable machine-readable code, and a user-facing message.
func generationFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return http.StatusBadRequest, "empty_input",
			"Te rog să introduci cel puțin un ingredient!"
	case errors.Is(err, service.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "quota_exceeded",
			"Ai atins limita de 10 rețete pe zi. Revino mâine!"
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusServiceUnavailable, "not_configured",
			"Serviciul de generare nu este configurat."
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, "upstream_error",
			"Nu se poate genera rețeta în acest moment. Te rugăm încearcă din nou."
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway, "generation_failed",
			"Nu se poate genera rețeta în acest moment. Te rugăm încearcă din nou."
	default:
		return http.StatusInternalServerError, "internal_error",
			"A apărut o eroare neașteptată."
	}
}
