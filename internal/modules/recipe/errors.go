package recipe

import "errors"

var (
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrIngredientNotFound    = errors.New("referenced ingredient not found")
	ErrTagNotFound           = errors.New("referenced tag not found")
	ErrEmptyIngredients      = errors.New("recipe must have at least one ingredient")
	ErrDuplicateIngredient   = errors.New("duplicate ingredient in recipe")
	ErrAmountOutOfRange      = errors.New("ingredient amount out of range")
	ErrCookingTimeOutOfRange = errors.New("cooking time out of range")
	ErrDuplicateRecipe       = errors.New("recipe with this name and ingredient set already exists")
	ErrTagsRequired          = errors.New("tags field is required on update")
	ErrInvalidImage          = errors.New("invalid image payload")
	ErrPermissionDenied      = errors.New("only the author may modify this recipe")
)
