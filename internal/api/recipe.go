package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retetar/backend/internal/middleware"
	"github.com/retetar/backend/internal/models"
	"github.com/retetar/backend/internal/parse"
	"github.com/retetar/backend/internal/service"
)

// ingredientPreviewLines is how many ingredient lines the gallery listing shows.
const ingredientPreviewLines = 3

// RecipeHandler handles the saved-recipe gallery.
type RecipeHandler struct {
	recipes *service.RecipeService
	auth    *service.AuthService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, auth *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		auth:    auth,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.auth))
	{
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

type saveRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions []string `json:"instructions" binding:"required,min=1"`
	Difficulty   int      `json:"difficulty"`
	WinePairing  string   `json:"wine_pairing"`
}

type recipeResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Difficulty   int       `json:"difficulty"`
	WinePairing  string    `json:"wine_pairing"`
	CreatedAt    string    `json:"created_at"`
	UserID       uuid.UUID `json:"user_id"`
}

func toRecipeResponse(r *models.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  r.IngredientLines(),
		Instructions: r.InstructionLines(),
		Difficulty:   r.Difficulty,
		WinePairing:  r.WinePairing,
		CreatedAt:    r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UserID:       r.UserID,
	}
}

// SaveRecipe stores a generated recipe in the gallery (explicit user action).
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Eroare la salvare: " + err.Error()})
		return
	}

	stored, err := h.recipes.SaveRecipe(c.Request.Context(), userID, &parse.Recipe{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Difficulty:   req.Difficulty,
		WinePairing:  req.WinePairing,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecipe) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Eroare la salvare: rețetă incompletă"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Eroare la salvare"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Rețeta a fost salvată cu succes!",
		"recipe":  toRecipeResponse(stored),
	})
}

// ListRecipes returns the gallery, newest first, with an ingredient preview.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	type listEntry struct {
		ID          uuid.UUID `json:"id"`
		Title       string    `json:"title"`
		Ingredients []string  `json:"ingredients"`
		Difficulty  int       `json:"difficulty"`
		CreatedAt   string    `json:"created_at"`
	}

	entries := make([]listEntry, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		preview := r.IngredientLines()
		if len(preview) > ingredientPreviewLines {
			preview = preview[:ingredientPreviewLines]
		}
		entries = append(entries, listEntry{
			ID:          r.ID,
			Title:       r.Title,
			Ingredients: preview,
			Difficulty:  r.Difficulty,
			CreatedAt:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"recipes": entries})
}

// GetRecipe returns one stored recipe in full.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rețeta nu a fost găsită!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// DeleteRecipe removes a stored recipe owned by the authenticated user.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rețeta nu a fost găsită!"})
		case errors.Is(err, service.ErrNotRecipeOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Rețeta aparține altui utilizator"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
