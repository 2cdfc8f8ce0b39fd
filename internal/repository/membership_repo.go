package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// FavoriteRepository and ShoppingCartRepository are structurally identical
// (user, recipe) membership sets. Add relies on the unique index rather than
// a check-then-insert, so concurrent duplicate adds collapse to ErrDuplicate.

type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	ListRecipeIDs(ctx context.Context, userID int64) ([]int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.Favorite{UserID: userID, RecipeID: recipeID}).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	return ids, err
}

// ShoppingListItem is one aggregated row of a user's shopping list: line-item
// amounts summed per (name, unit) across every carted recipe.
type ShoppingListItem struct {
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	TotalAmount     int64  `gorm:"column:total_amount"`
}

type ShoppingCartRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	ListRecipeIDs(ctx context.Context, userID int64) ([]int64, error)
	// AggregateIngredients groups the user's carted line items by ingredient
	// name and unit (not id, so identically named catalog rows merge), sums
	// the amounts and orders by name.
	AggregateIngredients(ctx context.Context, userID int64) ([]ShoppingListItem, error)
}

type shoppingCartRepository struct {
	db *gorm.DB
}

func NewShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *shoppingCartRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.ShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shoppingCartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *shoppingCartRepository) ListRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.ShoppingCart{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	return ids, err
}

func (r *shoppingCartRepository) AggregateIngredients(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Model(&domain.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	return items, err
}
