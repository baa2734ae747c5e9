package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

const maxImageSize = 10 << 20 // 10MB

// ImageService stores uploaded images and attaches them to owned recipes.
type ImageService struct {
	recipes ports.RecipeRepository
	media   ports.MediaStore
	log     zerolog.Logger
}

func NewImageService(recipes ports.RecipeRepository, media ports.MediaStore, log zerolog.Logger) *ImageService {
	return &ImageService{recipes: recipes, media: media, log: log}
}

// Upload validates the payload, stores it under a fresh random key, and
// records the key on the recipe. The previous image, if any, is removed
// best-effort.
func (s *ImageService) Upload(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*domain.Recipe, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrInvalidInput)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: image exceeds 10MB limit", domain.ErrInvalidInput)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: upload is not a valid image", domain.ErrInvalidInput)
	}

	recipe, err := s.recipes.FindByID(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	key := imageKey(filename, contentType)
	if err := s.media.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	previous := recipe.ImagePath
	recipe.ImagePath = key
	if err := s.recipes.Save(ctx, recipe); err != nil {
		// Do not leave an orphaned file behind.
		_ = s.media.Delete(ctx, key)
		return nil, err
	}

	if previous != "" {
		if err := s.media.Delete(ctx, previous); err != nil {
			s.log.Warn().Err(err).Str("key", previous).Msg("failed to remove previous image")
		}
	}

	s.log.Info().Uint("recipe_id", recipe.ID).Str("key", key).Str("content_type", contentType).Msg("image uploaded")
	return recipe, nil
}

// imageKey builds a storage key with a fresh random identifier so repeated
// uploads never collide. The extension comes from the client filename,
// falling back to the sniffed content type.
func imageKey(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		switch contentType {
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}
	return "recipe/" + uuid.New().String() + ext
}
