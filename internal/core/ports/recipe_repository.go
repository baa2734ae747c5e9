package ports

import (
	"context"

	"github.com/plateful/recipe-api/internal/core/domain"
)

// RecipeFilter narrows a recipe listing to recipes associated with any of
// the given tag or ingredient ids. Empty slices apply no filter.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines owner-scoped recipe persistence. Every method
// taking a userID must return domain.ErrNotFound for rows owned by anyone
// else.
type RecipeRepository interface {
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]domain.Recipe, error)
	FindByID(ctx context.Context, userID, id uint) (*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe) error
	Save(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, userID, id uint) error
	ReplaceTags(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *domain.Recipe, ingredients []domain.Ingredient) error
}

// TagRepository defines owner-scoped tag persistence. GetOrCreate backs the
// nested-write resolution on recipes.
type TagRepository interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Tag, error)
	FindByID(ctx context.Context, userID, id uint) (*domain.Tag, error)
	GetOrCreate(ctx context.Context, userID uint, name string) (*domain.Tag, error)
	Save(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, userID, id uint) error
}

// IngredientRepository mirrors TagRepository for ingredients.
type IngredientRepository interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Ingredient, error)
	FindByID(ctx context.Context, userID, id uint) (*domain.Ingredient, error)
	GetOrCreate(ctx context.Context, userID uint, name string) (*domain.Ingredient, error)
	Save(ctx context.Context, ingredient *domain.Ingredient) error
	Delete(ctx context.Context, userID, id uint) error
}

// MediaStore persists uploaded files under opaque keys.
type MediaStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
