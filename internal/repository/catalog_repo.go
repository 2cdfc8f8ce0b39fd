package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type IngredientRepository interface {
	List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
	Create(ctx context.Context, ing *domain.Ingredient) error
	Update(ctx context.Context, ing *domain.Ingredient) error
	Delete(ctx context.Context, id int64) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}
	var out []domain.Ingredient
	err := q.Find(&out).Error
	return out, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := r.db.WithContext(ctx).First(&ing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *ingredientRepository) Create(ctx context.Context, ing *domain.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepository) Update(ctx context.Context, ing *domain.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Ingredient{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) error
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id int64) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var out []domain.Tag
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	var out []domain.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	err := r.db.WithContext(ctx).Create(tag).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	err := r.db.WithContext(ctx).Save(tag).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
