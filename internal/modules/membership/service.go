package membership

import (
	"context"
	"errors"

	"foodgram/internal/repository"
)

// Service handles the two per-user recipe membership sets: favorites and the
// shopping cart. Adds lean on the unique index, so a racing duplicate add
// surfaces as ErrAlreadyExists instead of a second row.
type Service struct {
	favorites repository.FavoriteRepository
	carts     repository.ShoppingCartRepository
	recipes   repository.RecipeRepository
}

func NewService(
	favorites repository.FavoriteRepository,
	carts repository.ShoppingCartRepository,
	recipes repository.RecipeRepository,
) *Service {
	return &Service{favorites: favorites, carts: carts, recipes: recipes}
}

func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return translateAdd(s.favorites.Add(ctx, userID, recipeID))
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return translateRemove(s.favorites.Remove(ctx, userID, recipeID))
}

func (s *Service) AddToCart(ctx context.Context, userID, recipeID int64) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return translateAdd(s.carts.Add(ctx, userID, recipeID))
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return translateRemove(s.carts.Remove(ctx, userID, recipeID))
}

func (s *Service) ensureRecipe(ctx context.Context, recipeID int64) error {
	_, err := s.recipes.GetByID(ctx, recipeID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecipeNotFound
	}
	return err
}

func translateAdd(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}

func translateRemove(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMembershipGone
	}
	return err
}
