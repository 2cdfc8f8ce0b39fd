package subscription

import (
	"context"
	"errors"
	"strconv"

	"foodgram/internal/modules/recipe"
	"foodgram/internal/repository"
)

// Service owns the directed follow graph between users.
type Service struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	recipes repository.RecipeRepository
}

func NewService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	recipes repository.RecipeRepository,
) *Service {
	return &Service{follows: follows, users: users, recipes: recipes}
}

func (s *Service) Subscribe(ctx context.Context, userID, authorID int64) error {
	if userID == authorID {
		return ErrSelfSubscribe
	}
	if err := s.ensureAuthor(ctx, authorID); err != nil {
		return err
	}

	err := s.follows.Add(ctx, userID, authorID)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrAlreadySubscribed
	}
	return err
}

func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if err := s.ensureAuthor(ctx, authorID); err != nil {
		return err
	}

	err := s.follows.Remove(ctx, userID, authorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotSubscribed
	}
	return err
}

// List returns the authors the user follows, each with a preview of their
// recipes. recipesLimit is the raw query value: anything unparseable means
// "no cap" and must never fail the request.
func (s *Service) List(ctx context.Context, userID int64, recipesLimit string) ([]SubscribedUserResponse, error) {
	limit := 0
	if n, err := strconv.Atoi(recipesLimit); err == nil && n > 0 {
		limit = n
	}

	authors, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]SubscribedUserResponse, 0, len(authors))
	for i := range authors {
		author := &authors[i]

		recipes, err := s.recipes.ListByAuthor(ctx, author.ID, limit)
		if err != nil {
			return nil, err
		}
		count, err := s.recipes.CountByAuthor(ctx, author.ID)
		if err != nil {
			return nil, err
		}

		resp := SubscribedUserResponse{
			Email:        author.Email,
			ID:           author.ID,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
			Recipes:      make([]recipe.MinifiedRecipe, 0, len(recipes)),
			RecipesCount: count,
		}
		for _, r := range recipes {
			resp.Recipes = append(resp.Recipes, recipe.MinifiedRecipe{
				ID:          r.ID,
				Name:        r.Name,
				Image:       r.Image,
				CookingTime: r.CookingTime,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) ensureAuthor(ctx context.Context, authorID int64) error {
	_, err := s.users.GetByID(ctx, authorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAuthorNotFound
	}
	return err
}
