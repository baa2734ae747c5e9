package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/core/domain"
)

// TagRepository is the gorm-backed implementation of ports.TagRepository.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List returns the user's tags ordered by name descending. With assignedOnly
// the result is limited to tags attached to at least one recipe; the join
// can yield a tag once per recipe, hence the DISTINCT.
func (r *TagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Tag, error) {
	q := r.db.WithContext(ctx).Model(&domain.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id")
	}

	var tags []domain.Tag
	if err := q.Distinct("tags.*").Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return &tag, nil
}

// GetOrCreate reuses an existing tag with the same owner and name, creating
// one when no match exists. Uniqueness is by lookup only; there is no
// database constraint behind it.
func (r *TagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*domain.Tag, error) {
	tag := domain.Tag{UserID: userID, Name: name}
	err := r.db.WithContext(ctx).
		Where(domain.Tag{UserID: userID, Name: name}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, fmt.Errorf("get or create tag: %w", err)
	}
	return &tag, nil
}

func (r *TagRepository) Save(ctx context.Context, tag *domain.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&domain.Tag{})
	if res.Error != nil {
		return fmt.Errorf("delete tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IngredientRepository is the gorm-backed implementation of
// ports.IngredientRepository.
type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]domain.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ingredient{}).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id")
	}

	var ingredients []domain.Ingredient
	if err := q.Distinct("ingredients.*").Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *IngredientRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return &ingredient, nil
}

func (r *IngredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*domain.Ingredient, error) {
	ingredient := domain.Ingredient{UserID: userID, Name: name}
	err := r.db.WithContext(ctx).
		Where(domain.Ingredient{UserID: userID, Name: name}).
		FirstOrCreate(&ingredient).Error
	if err != nil {
		return nil, fmt.Errorf("get or create ingredient: %w", err)
	}
	return &ingredient, nil
}

func (r *IngredientRepository) Save(ctx context.Context, ingredient *domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return fmt.Errorf("save ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&domain.Ingredient{})
	if res.Error != nil {
		return fmt.Errorf("delete ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
