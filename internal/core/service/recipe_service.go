package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

// RecipeService implements owner-scoped recipe CRUD with nested tag and
// ingredient resolution.
type RecipeService struct {
	recipes     ports.RecipeRepository
	tags        ports.TagRepository
	ingredients ports.IngredientRepository
	log         zerolog.Logger
}

func NewRecipeService(recipes ports.RecipeRepository, tags ports.TagRepository, ingredients ports.IngredientRepository, log zerolog.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, tags: tags, ingredients: ingredients, log: log}
}

func (s *RecipeService) List(ctx context.Context, userID uint, filter ports.RecipeFilter) ([]domain.Recipe, error) {
	return s.recipes.List(ctx, userID, filter)
}

func (s *RecipeService) Get(ctx context.Context, userID, id uint) (*domain.Recipe, error) {
	return s.recipes.FindByID(ctx, userID, id)
}

func (s *RecipeService) Create(ctx context.Context, userID uint, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	tags, err := s.resolveTags(ctx, userID, in.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, userID, in.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		s.log.Error().Err(err).Uint("user_id", userID).Msg("failed to create recipe")
		return nil, err
	}

	s.log.Info().Uint("recipe_id", recipe.ID).Uint("user_id", userID).Msg("recipe created")
	return recipe, nil
}

// Update applies a partial update to an owned recipe. Nil scalars keep their
// stored value; a non-nil tag/ingredient list replaces the association set
// wholesale, so a pointer to an empty slice clears it.
func (s *RecipeService) Update(ctx context.Context, userID, id uint, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		recipe.Title = *in.Title
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.TimeMinutes != nil {
		recipe.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		recipe.Price = *in.Price
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}

	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags, err := s.resolveTags(ctx, userID, *in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipes.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, fmt.Errorf("replace tags: %w", err)
		}
	}
	if in.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, userID, *in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipes.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return nil, fmt.Errorf("replace ingredients: %w", err)
		}
	}

	return s.recipes.FindByID(ctx, userID, id)
}

func (s *RecipeService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.recipes.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info().Uint("recipe_id", id).Uint("user_id", userID).Msg("recipe deleted")
	return nil
}

// resolveTags maps each nested name to an existing caller-owned tag or a
// freshly created one.
func (s *RecipeService) resolveTags(ctx context.Context, userID uint, in []ports.AttributeInput) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(in))
	for _, attr := range in {
		tag, err := s.tags.GetOrCreate(ctx, userID, attr.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", attr.Name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, userID uint, in []ports.AttributeInput) ([]domain.Ingredient, error) {
	ingredients := make([]domain.Ingredient, 0, len(in))
	for _, attr := range in {
		ingredient, err := s.ingredients.GetOrCreate(ctx, userID, attr.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", attr.Name, err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}
