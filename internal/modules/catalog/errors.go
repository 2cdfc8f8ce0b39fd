package catalog

import "errors"

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagConflict        = errors.New("tag name, color and slug must be unique")
)
