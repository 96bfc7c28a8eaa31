package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retetar/backend/internal/testhelpers"
)

func newRateLimitTestRouter(limiter *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/generate", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGenerate(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("should allow requests within the window and reject the excess", func(t *testing.T) {
		client := testhelpers.SetupTestRedis(t)
		limiter := NewRateLimiter(client, RateLimitConfig{
			Window:    time.Minute,
			Limit:     3,
			KeyPrefix: "rate_limit:test",
		})
		router := newRateLimitTestRouter(limiter, uuid.New())

		for i := 0; i < 3; i++ {
			w := doGenerate(router)
			require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		}

		w := doGenerate(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("should track users independently", func(t *testing.T) {
		client := testhelpers.SetupTestRedis(t)
		limiter := NewRateLimiter(client, RateLimitConfig{
			Window:    time.Minute,
			Limit:     1,
			KeyPrefix: "rate_limit:test",
		})

		first := newRateLimitTestRouter(limiter, uuid.New())
		second := newRateLimitTestRouter(limiter, uuid.New())

		require.Equal(t, http.StatusOK, doGenerate(first).Code)
		assert.Equal(t, http.StatusTooManyRequests, doGenerate(first).Code)
		assert.Equal(t, http.StatusOK, doGenerate(second).Code)
	})

	t.Run("should fail open when redis is unreachable", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { _ = client.Close() })

		limiter := NewGenerationRateLimiter(client)
		router := newRateLimitTestRouter(limiter, uuid.New())

		w := doGenerate(router)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	})

	t.Run("should reject unauthenticated requests", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		limiter := NewGenerationRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

		router := gin.New()
		router.POST("/generate", limiter.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
