package membership

import "errors"

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAlreadyExists  = errors.New("recipe already in the set")
	ErrMembershipGone = errors.New("recipe is not in the set")
)
