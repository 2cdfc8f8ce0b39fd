package catalog

import (
	"context"
	"errors"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Service manages the shared reference data: the ingredient and tag catalogs.
// Reads are open; mutations are admin-gated at the routing layer.
type Service struct {
	ingredients repository.IngredientRepository
	tags        repository.TagRepository
}

func NewService(ingredients repository.IngredientRepository, tags repository.TagRepository) *Service {
	return &Service{ingredients: ingredients, tags: tags}
}

func (s *Service) ListIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx, namePrefix)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrIngredientNotFound
	}
	return ing, err
}

func (s *Service) CreateIngredient(ctx context.Context, req CreateIngredientRequest) (*domain.Ingredient, error) {
	ing := &domain.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := s.ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) UpdateIngredient(ctx context.Context, id int64, req UpdateIngredientRequest) (*domain.Ingredient, error) {
	ing, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		ing.Name = *req.Name
	}
	if req.MeasurementUnit != nil {
		ing.MeasurementUnit = *req.MeasurementUnit
	}
	if err := s.ingredients.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	err := s.ingredients.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrIngredientNotFound
	}
	return err
}

func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTagNotFound
	}
	return tag, err
}

func (s *Service) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	tag := &domain.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagConflict
		}
		return nil, err
	}
	return tag, nil
}

func (s *Service) UpdateTag(ctx context.Context, id int64, req UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if req.Slug != nil {
		tag.Slug = *req.Slug
	}
	if err := s.tags.Update(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagConflict
		}
		return nil, err
	}
	return tag, nil
}

func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	err := s.tags.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTagNotFound
	}
	return err
}
