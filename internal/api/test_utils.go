package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retetar/backend/internal/service"
	"github.com/retetar/backend/internal/testhelpers"

	"go.uber.org/zap"
)

// fakeProvider stands in for the Gemini client in handler tests.
type fakeProvider struct {
	configured bool
	completion string
	err        error
}

func (p *fakeProvider) Configured() bool { return p.configured }

func (p *fakeProvider) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	return p.completion, p.err
}

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	quota  *service.QuotaService
}

// setupTestAPI builds a router with all handlers registered against an
// in-memory database. The burst rate limiter is left out; it needs Redis and
// has its own coverage.
func setupTestAPI(t *testing.T, provider service.CompletionProvider) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-jwt-secret")
	quota := service.NewQuotaService(db)
	generator := service.NewGeneratorService(provider, quota, zap.NewNop())
	recipes := service.NewRecipeService(db)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(auth).RegisterRoutes(v1)
	NewGenerateHandler(generator, quota, auth, nil).RegisterRoutes(v1)
	NewRecipeHandler(recipes, auth).RegisterRoutes(v1)

	return &testAPI{router: router, db: db, auth: auth, quota: quota}
}

// doJSON performs a JSON request against the test router.
func (a *testAPI) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func (a *testAPI) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := a.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "parola123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
