package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	claims *TokenClaims
	err    error
}

func (v *fakeValidator) ValidateToken(token string) (*TokenClaims, error) {
	return v.claims, v.err
}

func newAuthTestRouter(validator TokenValidator) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID

	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		seen = id
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("should pass valid token and expose user id", func(t *testing.T) {
		userID := uuid.New()
		router, seen := newAuthTestRouter(&fakeValidator{claims: &TokenClaims{UserID: userID}})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, *seen)
	})

	t.Run("should reject missing authorization header", func(t *testing.T) {
		router, _ := newAuthTestRouter(&fakeValidator{claims: &TokenClaims{UserID: uuid.New()}})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject non-bearer header", func(t *testing.T) {
		router, _ := newAuthTestRouter(&fakeValidator{claims: &TokenClaims{UserID: uuid.New()}})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject invalid token", func(t *testing.T) {
		router, _ := newAuthTestRouter(&fakeValidator{err: errors.New("token expired")})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
