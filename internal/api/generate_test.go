package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retetar/backend/internal/service"
)

const capreseCompletion = `{
	"title": "Salată Caprese",
	"servings": 2,
	"prep_time_minutes": 10,
	"ingredients": [
		{"item": "roșii", "quantity": 300, "unit": "g"},
		{"item": "mozzarella", "quantity": 200, "unit": "g"},
		{"item": "busuioc", "quantity": 10, "unit": "g"}
	],
	"instructions": [
		{"step": 1, "text": "Spală roșiile", "time_minutes": 2},
		{"step": 2, "text": "Taie roșiile felii", "time_minutes": 3},
		{"step": 3, "text": "Taie mozzarella felii", "time_minutes": 3},
		{"step": 4, "text": "Spală busuiocul", "time_minutes": 1},
		{"step": 5, "text": "Alternează feliile pe platou", "time_minutes": 4},
		{"step": 6, "text": "Presară frunzele de busuioc", "time_minutes": 1},
		{"step": 7, "text": "Stropește cu ulei de măsline", "time_minutes": 1},
		{"step": 8, "text": "Adaugă sare după gust", "time_minutes": 1},
		{"step": 9, "text": "Adaugă piper proaspăt măcinat", "time_minutes": 1},
		{"step": 10, "text": "Servește imediat", "time_minutes": 1}
	],
	"difficulty": 2,
	"wine_pairing": "Pinot Grigio"
}`

func TestGenerateHandler_Generate(t *testing.T) {
	t.Run("should generate a recipe for an authenticated user", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
			"ingredients": "roșii, mozzarella, busuioc",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Recipe struct {
				Title        string   `json:"title"`
				Ingredients  []string `json:"ingredients"`
				Instructions []string `json:"instructions"`
				Difficulty   int      `json:"difficulty"`
				WinePairing  string   `json:"wine_pairing"`
			} `json:"recipe"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Salată Caprese", resp.Recipe.Title)
		assert.Len(t, resp.Recipe.Ingredients, 3)
		assert.Len(t, resp.Recipe.Instructions, 10)
		assert.Equal(t, 2, resp.Recipe.Difficulty)
		assert.Equal(t, "Pinot Grigio", resp.Recipe.WinePairing)
	})

	t.Run("should require authentication", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", "", gin.H{
			"ingredients": "roșii",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject missing ingredients", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "empty_input")
	})

	t.Run("should reject blank ingredients", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
			"ingredients": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "empty_input")
	})

	t.Run("should return 429 once the daily limit is reached", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})
		token := app.registerUser(t, "ana@example.com")

		claims, err := app.auth.ValidateToken(token)
		require.NoError(t, err)
		for i := 0; i < service.DailyGenerationLimit; i++ {
			require.NoError(t, app.quota.IncrementToday(context.Background(), claims.UserID))
		}

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
			"ingredients": "roșii",
		})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "quota_exceeded")
	})

	t.Run("should return 503 when the provider is not configured", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: false})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
			"ingredients": "roșii",
		})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "not_configured")
	})

	t.Run("should return 502 on upstream failure", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{
			configured: true,
			err:        fmt.Errorf("%w: status 500", service.ErrUpstream),
		})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
			"ingredients": "roșii",
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "upstream_error")
	})

	t.Run("should return 502 on unusable model output", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: "nu pot genera"})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
			"ingredients": "roșii",
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "generation_failed")
	})
}

func TestGenerateHandler_Usage(t *testing.T) {
	t.Run("should report zero usage for a fresh user", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})
		token := app.registerUser(t, "ana@example.com")

		w := app.doJSON(t, http.MethodGet, "/api/v1/usage", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Limit     int `json:"limit"`
			Used      int `json:"used"`
			Remaining int `json:"remaining"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, service.DailyGenerationLimit, resp.Limit)
		assert.Equal(t, 0, resp.Used)
		assert.Equal(t, service.DailyGenerationLimit, resp.Remaining)
	})

	t.Run("should count generations against the limit", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{configured: true, completion: capreseCompletion})
		token := app.registerUser(t, "ana@example.com")

		for i := 0; i < 3; i++ {
			w := app.doJSON(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{
				"ingredients": "roșii",
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := app.doJSON(t, http.MethodGet, "/api/v1/usage", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Used      int `json:"used"`
			Remaining int `json:"remaining"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Used)
		assert.Equal(t, service.DailyGenerationLimit-3, resp.Remaining)
	})

	t.Run("should require authentication", func(t *testing.T) {
		app := setupTestAPI(t, &fakeProvider{})

		w := app.doJSON(t, http.MethodGet, "/api/v1/usage", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
