package recipe

import (
	"context"
	"errors"

	"foodgram/internal/config"
	"foodgram/internal/domain"
	"foodgram/internal/modules/auth"
	"foodgram/internal/repository"
)

type imageStore interface {
	SaveDataURI(payload string) (string, error)
}

// Service owns recipe aggregate consistency: line-item validation, the
// duplicate-recipe rule and the transactional replace on update.
type Service struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	tags        repository.TagRepository
	favorites   repository.FavoriteRepository
	carts       repository.ShoppingCartRepository
	follows     repository.FollowRepository
	images      imageStore
	limits      config.Limits
}

func NewService(
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
	tags repository.TagRepository,
	favorites repository.FavoriteRepository,
	carts repository.ShoppingCartRepository,
	follows repository.FollowRepository,
	images imageStore,
	limits config.Limits,
) *Service {
	return &Service{
		recipes:     recipes,
		ingredients: ingredients,
		tags:        tags,
		favorites:   favorites,
		carts:       carts,
		follows:     follows,
		images:      images,
		limits:      limits,
	}
}

func (s *Service) Create(ctx context.Context, viewer domain.Viewer, req CreateRecipeRequest) (*RecipeResponse, error) {
	if req.CookingTime < s.limits.MinCookingTime || req.CookingTime > s.limits.MaxCookingTime {
		return nil, ErrCookingTimeOutOfRange
	}

	items, ingredientIDs, err := s.resolveLineItems(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	dup, err := s.recipes.HasDuplicate(ctx, req.Name, ingredientIDs, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateRecipe
	}

	imageURL, err := s.images.SaveDataURI(req.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}

	rec := &domain.Recipe{
		AuthorID:    viewer.ID,
		Name:        req.Name,
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Create(ctx, rec, items, tags); err != nil {
		return nil, err
	}

	return s.Get(ctx, viewer, rec.ID)
}

func (s *Service) Update(ctx context.Context, viewer domain.Viewer, recipeID int64, req UpdateRecipeRequest) (*RecipeResponse, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if rec.AuthorID != viewer.ID && !viewer.Admin {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Text != nil {
		rec.Text = *req.Text
	}
	if req.CookingTime != nil {
		if *req.CookingTime < s.limits.MinCookingTime || *req.CookingTime > s.limits.MaxCookingTime {
			return nil, ErrCookingTimeOutOfRange
		}
		rec.CookingTime = *req.CookingTime
	}
	if req.Image != nil {
		imageURL, err := s.images.SaveDataURI(*req.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		rec.Image = imageURL
	}

	// nil means "keep prior line items"; a supplied list replaces wholesale
	var items []domain.RecipeIngredient
	ingredientIDs := make([]int64, 0, len(rec.Ingredients))
	if req.Ingredients != nil {
		items, ingredientIDs, err = s.resolveLineItems(ctx, *req.Ingredients)
		if err != nil {
			return nil, err
		}
	} else {
		for _, li := range rec.Ingredients {
			ingredientIDs = append(ingredientIDs, li.IngredientID)
		}
	}

	if req.Tags == nil {
		return nil, ErrTagsRequired
	}
	tags, err := s.resolveTags(ctx, *req.Tags)
	if err != nil {
		return nil, err
	}

	dup, err := s.recipes.HasDuplicate(ctx, rec.Name, ingredientIDs, rec.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateRecipe
	}

	rec.Ingredients = nil
	rec.Tags = nil
	if err := s.recipes.Update(ctx, rec, items, tags); err != nil {
		return nil, err
	}

	return s.Get(ctx, viewer, rec.ID)
}

func (s *Service) Get(ctx context.Context, viewer domain.Viewer, id int64) (*RecipeResponse, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	responses, err := s.buildResponses(ctx, viewer, []domain.Recipe{*rec})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// ListQuery mirrors the supported listing filters. Membership filters are
// honored only for authenticated viewers.
type ListQuery struct {
	TagSlugs      []string
	AuthorID      int64
	OnlyFavorited bool
	OnlyInCart    bool
	Limit         int
	Offset        int
}

func (s *Service) List(ctx context.Context, viewer domain.Viewer, q ListQuery) ([]RecipeResponse, int64, error) {
	f := repository.RecipeFilter{
		TagSlugs: q.TagSlugs,
		AuthorID: q.AuthorID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if viewer.Authenticated {
		if q.OnlyFavorited {
			f.FavoritedBy = viewer.ID
		}
		if q.OnlyInCart {
			f.InCartOf = viewer.ID
		}
	}

	recipes, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.buildResponses(ctx, viewer, recipes)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (s *Service) Delete(ctx context.Context, viewer domain.Viewer, id int64) error {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if rec.AuthorID != viewer.ID && !viewer.Admin {
		return ErrPermissionDenied
	}

	return s.recipes.Delete(ctx, id)
}

// resolveLineItems validates the request entries (non-empty, unique by
// ingredient id, amounts within limits) and resolves them against the
// catalog. Returns the line items and the referenced ingredient ids.
func (s *Service) resolveLineItems(ctx context.Context, entries []LineItemRequest) ([]domain.RecipeIngredient, []int64, error) {
	if len(entries) == 0 {
		return nil, nil, ErrEmptyIngredients
	}

	seen := make(map[int64]struct{}, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if e.Amount < s.limits.MinAmount || e.Amount > s.limits.MaxAmount {
			return nil, nil, ErrAmountOutOfRange
		}
		if _, dup := seen[e.ID]; dup {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[e.ID] = struct{}{}
		ids = append(ids, e.ID)
	}

	found, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ids) {
		return nil, nil, ErrIngredientNotFound
	}

	items := make([]domain.RecipeIngredient, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.RecipeIngredient{IngredientID: e.ID, Amount: e.Amount})
	}
	return items, ids, nil
}

// resolveTags resolves tag ids against the catalog. Always returns a non-nil
// slice so the repository can distinguish "replace with empty" from "keep".
func (s *Service) resolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}

	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := s.tags.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, ErrTagNotFound
	}
	return found, nil
}

func (s *Service) buildResponses(ctx context.Context, viewer domain.Viewer, recipes []domain.Recipe) ([]RecipeResponse, error) {
	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	following := map[int64]bool{}

	if viewer.Authenticated {
		favIDs, err := s.favorites.ListRecipeIDs(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range favIDs {
			favorited[id] = true
		}

		cartIDs, err := s.carts.ListRecipeIDs(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range cartIDs {
			inCart[id] = true
		}

		followingIDs, err := s.follows.ListFollowingIDs(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range followingIDs {
			following[id] = true
		}
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		rec := &recipes[i]

		resp := RecipeResponse{
			ID:               rec.ID,
			Name:             rec.Name,
			Image:            rec.Image,
			Text:             rec.Text,
			CookingTime:      rec.CookingTime,
			IsFavorited:      favorited[rec.ID],
			IsInShoppingCart: inCart[rec.ID],
			Tags:             make([]TagResponse, 0, len(rec.Tags)),
			Ingredients:      make([]LineItemResponse, 0, len(rec.Ingredients)),
		}

		if rec.Author != nil {
			resp.Author = auth.UserResponse{
				Email:        rec.Author.Email,
				ID:           rec.Author.ID,
				Username:     rec.Author.Username,
				FirstName:    rec.Author.FirstName,
				LastName:     rec.Author.LastName,
				IsSubscribed: following[rec.Author.ID],
			}
		}

		for _, t := range rec.Tags {
			resp.Tags = append(resp.Tags, TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
		}
		for _, li := range rec.Ingredients {
			item := LineItemResponse{ID: li.IngredientID, Amount: li.Amount}
			if li.Ingredient != nil {
				item.Name = li.Ingredient.Name
				item.MeasurementUnit = li.Ingredient.MeasurementUnit
			}
			resp.Ingredients = append(resp.Ingredients, item)
		}

		out = append(out, resp)
	}
	return out, nil
}
