package domain

import "time"

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null;index"`
	Image       string    `json:"image" gorm:"not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is one line item of a recipe. A recipe owns its line items
// exclusively; within one recipe an ingredient may appear at most once.
type RecipeIngredient struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
