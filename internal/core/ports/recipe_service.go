package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/plateful/recipe-api/internal/core/domain"
)

// AttributeInput is a nested tag or ingredient reference by name. During a
// recipe write each entry is resolved to an existing caller-owned row with
// the same name, or a new row when none exists.
type AttributeInput struct {
	Name string
}

// CreateRecipeInput carries a full recipe payload.
type CreateRecipeInput struct {
	Title       string
	Description string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Tags        []AttributeInput
	Ingredients []AttributeInput
}

// UpdateRecipeInput carries a partial recipe update. Nil scalars are left
// unchanged. A nil Tags/Ingredients pointer leaves the association set
// untouched; a pointer to an empty slice clears it.
type UpdateRecipeInput struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]AttributeInput
	Ingredients *[]AttributeInput
}

type RecipeService interface {
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]domain.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*domain.Recipe, error)
	Create(ctx context.Context, userID uint, in CreateRecipeInput) (*domain.Recipe, error)
	Update(ctx context.Context, userID, id uint, in UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
}

// TagService manages a user's tags outside of nested recipe writes.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Tag, error)
	Update(ctx context.Context, userID, id uint, name string) (*domain.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

// IngredientService manages a user's ingredients outside of nested recipe
// writes.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*domain.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ImageService attaches uploaded images to owned recipes.
type ImageService interface {
	Upload(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*domain.Recipe, error)
}
