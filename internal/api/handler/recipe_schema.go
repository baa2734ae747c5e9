package handler

import "github.com/shopspring/decimal"

// attributeRequest is a nested tag or ingredient reference by name.
type attributeRequest struct {
	Name string `json:"name" validate:"required"`
}

// createRecipeRequest carries a full recipe payload. There is deliberately
// no owner field; ownership always comes from the auth claims.
type createRecipeRequest struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	TimeMinutes int                `json:"time_minutes" validate:"gte=0"`
	Price       decimal.Decimal    `json:"price"`
	Link        string             `json:"link"`
	Tags        []attributeRequest `json:"tags"`
	Ingredients []attributeRequest `json:"ingredients"`
}

// updateRecipeRequest is a partial update: absent scalars keep their stored
// value, an absent tag/ingredient list leaves the association set untouched,
// and an empty list clears it.
type updateRecipeRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	TimeMinutes *int                `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal    `json:"price"`
	Link        *string             `json:"link"`
	Tags        *[]attributeRequest `json:"tags"`
	Ingredients *[]attributeRequest `json:"ingredients"`
}

type attributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// recipeListItem is the shallow listing shape; description and the
// association sets only appear on the detail response.
type recipeListItem struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
}

type recipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       decimal.Decimal     `json:"price"`
	Link        string              `json:"link"`
	Tags        []attributeResponse `json:"tags"`
	Ingredients []attributeResponse `json:"ingredients"`
	Image       *string             `json:"image"`
}
