package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the core aggregate: a dish owned by exactly one user, with
// many-to-many links to that user's tags and ingredients.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"-" gorm:"index;not null"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description"`
	TimeMinutes int             `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(8,2);not null"`
	Link        string          `json:"link" gorm:"size:255"`
	ImagePath   string          `json:"-" gorm:"size:255"`
	Tags        []Tag           `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient    `json:"ingredients" gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (r *Recipe) String() string { return r.Title }

// Tag labels recipes for filtering. Name uniqueness per user is enforced by
// lookup during nested writes, not by a database constraint.
type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"index:idx_tags_user_name;not null"`
	Name   string `json:"name" gorm:"index:idx_tags_user_name;size:255;not null"`
}

func (t *Tag) String() string { return t.Name }

// Ingredient is a component of recipes, owned per user like Tag.
type Ingredient struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"index:idx_ingredients_user_name;not null"`
	Name   string `json:"name" gorm:"index:idx_ingredients_user_name;size:255;not null"`
}

func (i *Ingredient) String() string { return i.Name }
