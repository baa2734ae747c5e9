package handler

import (
	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

// mediaURLPrefix is where the router serves the media directory.
const mediaURLPrefix = "/media/"

func newRecipeListResponse(recipes []domain.Recipe) []recipeListItem {
	items := make([]recipeListItem, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, recipeListItem{
			ID:          r.ID,
			Title:       r.Title,
			TimeMinutes: r.TimeMinutes,
			Price:       r.Price,
			Link:        r.Link,
		})
	}
	return items
}

func newRecipeDetailResponse(r *domain.Recipe) recipeDetailResponse {
	resp := recipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        newAttributeResponses(tagPairs(r.Tags)),
		Ingredients: newAttributeResponses(ingredientPairs(r.Ingredients)),
	}
	if r.ImagePath != "" {
		url := mediaURLPrefix + r.ImagePath
		resp.Image = &url
	}
	return resp
}

type attributePair struct {
	id   uint
	name string
}

func tagPairs(tags []domain.Tag) []attributePair {
	pairs := make([]attributePair, 0, len(tags))
	for _, t := range tags {
		pairs = append(pairs, attributePair{id: t.ID, name: t.Name})
	}
	return pairs
}

func ingredientPairs(ingredients []domain.Ingredient) []attributePair {
	pairs := make([]attributePair, 0, len(ingredients))
	for _, i := range ingredients {
		pairs = append(pairs, attributePair{id: i.ID, name: i.Name})
	}
	return pairs
}

func newAttributeResponses(pairs []attributePair) []attributeResponse {
	out := make([]attributeResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, attributeResponse{ID: p.id, Name: p.name})
	}
	return out
}

func attributeInputs(in []attributeRequest) []ports.AttributeInput {
	out := make([]ports.AttributeInput, 0, len(in))
	for _, a := range in {
		out = append(out, ports.AttributeInput{Name: a.Name})
	}
	return out
}
