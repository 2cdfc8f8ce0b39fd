package recipe

import "foodgram/internal/modules/auth"

// LineItemRequest references a catalog ingredient by id with a quantity.
type LineItemRequest struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Text        string            `json:"text" binding:"required"`
	CookingTime int               `json:"cooking_time" binding:"required"`
	Image       string            `json:"image" binding:"required"`
	Ingredients []LineItemRequest `json:"ingredients" binding:"required"`
	Tags        []int64           `json:"tags"`
}

// UpdateRecipeRequest is a partial update. Nil fields keep their prior value,
// except Tags: the tags key is required on update and replaces the whole set.
type UpdateRecipeRequest struct {
	Name        *string            `json:"name" binding:"omitempty,max=200"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`
	Image       *string            `json:"image"`
	Ingredients *[]LineItemRequest `json:"ingredients"`
	Tags        *[]int64           `json:"tags"`
}

type LineItemResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type RecipeResponse struct {
	ID               int64              `json:"id"`
	Tags             []TagResponse      `json:"tags"`
	Author           auth.UserResponse  `json:"author"`
	Ingredients      []LineItemResponse `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
}

// MinifiedRecipe is the short form nested into subscription listings.
type MinifiedRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}
