package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

// TagService manages a user's tags. Rows are created through nested recipe
// writes; this service only lists, renames, and deletes them.
type TagService struct {
	repo ports.TagRepository
	log  zerolog.Logger
}

func NewTagService(repo ports.TagRepository, log zerolog.Logger) *TagService {
	return &TagService{repo: repo, log: log}
}

func (s *TagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Tag, error) {
	return s.repo.List(ctx, userID, assignedOnly)
}

func (s *TagService) Update(ctx context.Context, userID, id uint, name string) (*domain.Tag, error) {
	tag, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := s.repo.Save(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, userID, id uint) error {
	return s.repo.Delete(ctx, userID, id)
}

// IngredientService mirrors TagService for ingredients.
type IngredientService struct {
	repo ports.IngredientRepository
	log  zerolog.Logger
}

func NewIngredientService(repo ports.IngredientRepository, log zerolog.Logger) *IngredientService {
	return &IngredientService{repo: repo, log: log}
}

func (s *IngredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Ingredient, error) {
	return s.repo.List(ctx, userID, assignedOnly)
}

func (s *IngredientService) Update(ctx context.Context, userID, id uint, name string) (*domain.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = name
	if err := s.repo.Save(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *IngredientService) Delete(ctx context.Context, userID, id uint) error {
	return s.repo.Delete(ctx, userID, id)
}
