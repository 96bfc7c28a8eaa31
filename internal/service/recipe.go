package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retetar/backend/internal/models"
	"github.com/retetar/backend/internal/parse"
)

// RecipeService handles the saved-recipe gallery.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveRecipe persists a generated recipe for the given user. The payload must
// carry a title and at least one ingredient and instruction line; anything
// else is rejected as a structured failure, not stored partially.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe *parse.Recipe) (*models.Recipe, error) {
	if recipe == nil || !recipe.Complete() {
		return nil, ErrInvalidRecipe
	}

	stored := models.Recipe{
		Title:        recipe.Title,
		Ingredients:  models.JoinLines(recipe.Ingredients),
		Instructions: models.JoinLines(recipe.Instructions),
		Difficulty:   recipe.Difficulty,
		WinePairing:  recipe.WinePairing,
		UserID:       userID,
	}
	if err := s.db.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListRecipes returns the shared gallery, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves one stored recipe by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a stored recipe. Only the user who saved it may delete it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrNotRecipeOwner
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}
