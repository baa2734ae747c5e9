package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

// RecipeRepository is the gorm-backed implementation of
// ports.RecipeRepository. Every query is scoped to the owning user before
// anything else; a row owned by someone else is reported as not found.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns the user's recipes, newest first. Tag and ingredient filters
// use match-any semantics; the joins can produce duplicate rows, hence the
// DISTINCT.
func (r *RecipeRepository) List(ctx context.Context, userID uint, filter ports.RecipeFilter) ([]domain.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []domain.Recipe
	err := q.Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ? AND id = ?", userID, id).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &recipe, nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// Save persists scalar changes without touching the association sets; those
// are replaced explicitly via ReplaceTags/ReplaceIngredients.
func (r *RecipeRepository) Save(ctx context.Context, recipe *domain.Recipe) error {
	err := r.db.WithContext(ctx).
		Omit("Tags", "Ingredients").
		Save(recipe).Error
	if err != nil {
		return fmt.Errorf("save recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.Recipe{})
	if res.Error != nil {
		return fmt.Errorf("delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) ReplaceTags(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace recipe tags: %w", err)
	}
	recipe.Tags = tags
	return nil
}

func (r *RecipeRepository) ReplaceIngredients(ctx context.Context, recipe *domain.Recipe, ingredients []domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return fmt.Errorf("replace recipe ingredients: %w", err)
	}
	recipe.Ingredients = ingredients
	return nil
}
