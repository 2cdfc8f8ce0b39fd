package subscription

import "foodgram/internal/modules/recipe"

// SubscribedUserResponse is one followed author with a preview of their
// recipes. Recipes may be capped by the recipes_limit query parameter.
type SubscribedUserResponse struct {
	Email        string                  `json:"email"`
	ID           int64                   `json:"id"`
	Username     string                  `json:"username"`
	FirstName    string                  `json:"first_name"`
	LastName     string                  `json:"last_name"`
	IsSubscribed bool                    `json:"is_subscribed"`
	Recipes      []recipe.MinifiedRecipe `json:"recipes"`
	RecipesCount int64                   `json:"recipes_count"`
}
