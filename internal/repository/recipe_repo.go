package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram/internal/domain"
)

// RecipeFilter narrows a recipe listing. Zero values disable a criterion.
// TagSlugs use OR semantics: recipes bearing any of the slugs match.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    int64
	FavoritedBy int64
	InCartOf    int64
	Limit       int
	Offset      int
}

type RecipeRepository interface {
	// Create persists the recipe, its line items and its tag associations in
	// one transaction.
	Create(ctx context.Context, r *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error
	// Update saves the recipe's own fields and, when items or tags are
	// non-nil, wholesale-replaces the respective association in the same
	// transaction. A nil slice leaves that association untouched.
	Update(ctx context.Context, r *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, f RecipeFilter) ([]domain.Recipe, int64, error)
	Delete(ctx context.Context, id int64) error
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	// HasDuplicate reports whether another recipe exists with the same name
	// and the identical set of ingredient ids.
	HasDuplicate(ctx context.Context, name string, ingredientIDs []int64, excludeID int64) (bool, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RecipeID = rec.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(rec).Omit("Tags.*").Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) Update(ctx context.Context, rec *domain.Recipe, items []domain.RecipeIngredient, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(rec).Error; err != nil {
			return err
		}

		if items != nil {
			// delete-all, recreate: line items carry no identity across updates
			if err := tx.Where("recipe_id = ?", rec.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].RecipeID = rec.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		if tags != nil {
			if err := tx.Model(rec).Omit("Tags.*").Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var rec domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recipeRepository) List(ctx context.Context, f RecipeFilter) ([]domain.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{})

	// subqueries keep the result set free of join duplicates
	if len(f.TagSlugs) > 0 {
		q = q.Where(
			"recipes.id IN (?)",
			r.db.Model(&domain.Tag{}).
				Select("recipe_tags.recipe_id").
				Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
				Where("tags.slug IN ?", f.TagSlugs),
		)
	}
	if f.AuthorID > 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.FavoritedBy > 0 {
		q = q.Where(
			"recipes.id IN (?)",
			r.db.Model(&domain.Favorite{}).Select("recipe_id").Where("user_id = ?", f.FavoritedBy),
		)
	}
	if f.InCartOf > 0 {
		q = q.Where(
			"recipes.id IN (?)",
			r.db.Model(&domain.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", f.InCartOf),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("recipes.id DESC").
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var recipes []domain.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []domain.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *recipeRepository) HasDuplicate(ctx context.Context, name string, ingredientIDs []int64, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Preload("Ingredients").Where("name = ?", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var candidates []domain.Recipe
	if err := q.Find(&candidates).Error; err != nil {
		return false, err
	}

	want := make(map[int64]struct{}, len(ingredientIDs))
	for _, id := range ingredientIDs {
		want[id] = struct{}{}
	}

	for _, c := range candidates {
		if len(c.Ingredients) != len(want) {
			continue
		}
		match := true
		for _, li := range c.Ingredients {
			if _, ok := want[li.IngredientID]; !ok {
				match = false
				break
			}
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}
